package layout

import "l14tables/pkg/css"

// OutputDevice is the paint backend a laid out table draws itself on.
type OutputDevice interface {
	// PaintBackground fills bounds with the style's background color and
	// tiles its background image from the top-left of imageContainer,
	// clipped to bounds.
	PaintBackground(style *css.Style, bounds, imageContainer Rect)

	// PaintBorder paints all four sides of a separate-model border.
	PaintBorder(border css.BorderPropertySet, bounds Rect)

	// PaintCollapsedBorder paints one side of a collapsed border set along
	// the matching edge of bounds.
	PaintCollapsedBorder(border css.BorderPropertySet, bounds Rect, side css.Side)

	// DrawText draws a single line of text with its baseline at y.
	DrawText(s string, x, y float64, style *css.Style)

	// PushClip restricts painting to bounds, intersected with any clip
	// already pushed, until the matching PopClip.
	PushClip(bounds Rect)
	PopClip()
}

// Paint paints the laid out table: table background, cell backgrounds, then
// either every box's separate border or the collapsed border segments, and
// finally the cell content. Cell backgrounds and content are clipped to the
// cell's PaintingClipEdge.
func (t *Table) Paint(dev OutputDevice) {
	tb := t.Box
	if tb.Style.IsVisible() {
		dev.PaintBackground(tb.Style, tb.BorderBox(), tb.BorderBox())
	}

	cells := t.Cells()
	for _, c := range cells {
		dev.PushClip(c.PaintingClipEdge())
		c.PaintBackground(dev)
		dev.PopClip()
	}

	if t.IsCollapseBorders() {
		for _, b := range t.CollapsedBordersInPaintOrder() {
			if b.Value().Visible() {
				b.Cell.PaintCollapsedBorder(dev, b.Side)
			}
		}
	} else {
		if tb.Style.IsVisible() {
			dev.PaintBorder(tb.Style.GetBorder(), tb.BorderBox())
		}
		for _, c := range cells {
			c.PaintBorder(dev)
		}
	}

	for _, c := range cells {
		if !c.Style().IsVisible() {
			continue
		}
		dev.PushClip(c.PaintingClipEdge())
		paintContent(dev, c.Box)
		for _, f := range c.Floats().Floats() {
			paintFloat(dev, f.Box)
		}
		dev.PopClip()
	}
}

func paintContent(dev OutputDevice, b *Box) {
	for _, lb := range b.LineBoxes {
		for _, tb := range lb.Boxes {
			dev.DrawText(tb.Text, tb.X, lb.Y+lb.BaselineY, tb.Style)
		}
	}
}

func paintFloat(dev OutputDevice, b *Box) {
	bounds := b.BorderBox()
	dev.PaintBackground(b.Style, bounds, bounds)
	dev.PaintBorder(b.Style.GetBorder(), bounds)
	paintContent(dev, b)
}
