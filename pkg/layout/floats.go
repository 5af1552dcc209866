package layout

import "l14tables/pkg/css"

// FloatInfo tracks a floated box inside a block formatting context.
type FloatInfo struct {
	Box  *Box
	Side css.FloatType
}

// FloatManager holds the floats of one block formatting context. Table cells
// establish their own context, so each cell owns a manager.
type FloatManager struct {
	floats []FloatInfo
}

func (fm *FloatManager) AddFloat(box *Box, side css.FloatType) {
	fm.floats = append(fm.floats, FloatInfo{Box: box, Side: side})
}

func (fm *FloatManager) Floats() []FloatInfo {
	return fm.floats
}

// PerformFloatOperation applies op to every registered float.
func (fm *FloatManager) PerformFloatOperation(op func(floater *Box)) {
	for _, f := range fm.floats {
		op(f.Box)
	}
}

// Offsets returns how far left and right floats intrude into a band of the
// given height starting at y, measured from the container edges.
func (fm *FloatManager) Offsets(y, height, containerLeft, containerRight float64) (left, right float64) {
	for _, f := range fm.floats {
		r := marginBox(f.Box)
		if y+height <= r.Y || y >= r.Bottom() {
			continue
		}
		switch f.Side {
		case css.FloatLeft:
			left = max(left, r.Right()-containerLeft)
		case css.FloatRight:
			right = max(right, containerRight-r.X)
		}
	}
	return left, right
}

// Bottom returns the lowest margin edge of any float, or 0 with no floats.
func (fm *FloatManager) Bottom() float64 {
	bottom := 0.0
	for _, f := range fm.floats {
		bottom = max(bottom, marginBox(f.Box).Bottom())
	}
	return bottom
}

func marginBox(b *Box) Rect {
	r := b.BorderBox()
	return Rect{
		X:      r.X - b.Margin.Left,
		Y:      r.Y - b.Margin.Top,
		Width:  r.Width + b.Margin.Horizontal(),
		Height: r.Height + b.Margin.Vertical(),
	}
}
