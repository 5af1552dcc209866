package render

import (
	"math"

	"l14tables/pkg/css"
	"l14tables/pkg/layout"
)

var sides = [4]css.Side{css.SideTop, css.SideRight, css.SideBottom, css.SideLeft}

type point struct{ X, Y float64 }

// trapezoid returns the four corners of one side of a border, mitered at the
// corners where it meets its neighbours: outer edge first, clockwise.
func trapezoid(bounds layout.Rect, widths css.BoxEdge, side css.Side) [4]point {
	outerL, outerT := bounds.X, bounds.Y
	outerR, outerB := bounds.Right(), bounds.Bottom()
	innerL, innerT := outerL+widths.Left, outerT+widths.Top
	innerR, innerB := outerR-widths.Right, outerB-widths.Bottom

	switch side {
	case css.SideTop:
		return [4]point{{outerL, outerT}, {outerR, outerT}, {innerR, innerT}, {innerL, innerT}}
	case css.SideRight:
		return [4]point{{outerR, outerT}, {outerR, outerB}, {innerR, innerB}, {innerR, innerT}}
	case css.SideBottom:
		return [4]point{{outerR, outerB}, {outerL, outerB}, {innerL, innerB}, {innerR, innerB}}
	}
	return [4]point{{outerL, outerB}, {outerL, outerT}, {innerL, innerT}, {innerL, innerB}}
}

// sideRect is the band of the given width along one edge of bounds.
func sideRect(bounds layout.Rect, width float64, side css.Side) layout.Rect {
	switch side {
	case css.SideTop:
		return layout.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: width}
	case css.SideRight:
		return layout.Rect{X: bounds.Right() - width, Y: bounds.Y, Width: width, Height: bounds.Height}
	case css.SideBottom:
		return layout.Rect{X: bounds.X, Y: bounds.Bottom() - width, Width: bounds.Width, Height: width}
	}
	return layout.Rect{X: bounds.X, Y: bounds.Y, Width: width, Height: bounds.Height}
}

// dashPattern returns the on/off lengths for dashed and dotted borders,
// scaled with the border width.
func dashPattern(style css.BorderStyle, width float64) []float64 {
	w := math.Max(width, 1)
	if style == css.BorderStyleDotted {
		return []float64{w, w}
	}
	return []float64{3 * w, 2 * w}
}

// doubleBands splits a border band into its two outer thirds.
func doubleBands(rect layout.Rect, horizontal bool) []layout.Rect {
	if horizontal {
		third := rect.Height / 3
		return []layout.Rect{
			{X: rect.X, Y: rect.Y, Width: rect.Width, Height: third},
			{X: rect.X, Y: rect.Bottom() - third, Width: rect.Width, Height: third},
		}
	}
	third := rect.Width / 3
	return []layout.Rect{
		{X: rect.X, Y: rect.Y, Width: third, Height: rect.Height},
		{X: rect.Right() - third, Y: rect.Y, Width: third, Height: rect.Height},
	}
}

type shadedBand struct {
	rect  layout.Rect
	color css.Color
}

// shadedBands renders the 3D styles as flat bands: inset and outset shade
// the whole side, groove and ridge split it into an outer and inner half.
func shadedBands(rect layout.Rect, b css.BorderSide, side css.Side) []shadedBand {
	dark, light := shade(b.Color, 0.5), b.Color
	topLeft := side == css.SideTop || side == css.SideLeft

	switch b.Style {
	case css.BorderStyleInset, css.BorderStyleOutset:
		c := light
		if (b.Style == css.BorderStyleInset) == topLeft {
			c = dark
		}
		return []shadedBand{{rect, c}}
	}

	outer, inner := halves(rect, side)
	outerColor, innerColor := dark, light
	if (b.Style == css.BorderStyleRidge) == topLeft {
		outerColor, innerColor = light, dark
	}
	return []shadedBand{{outer, outerColor}, {inner, innerColor}}
}

// halves splits a side band into the half along the box's outer edge and
// the half towards its content.
func halves(rect layout.Rect, side css.Side) (outer, inner layout.Rect) {
	switch side {
	case css.SideTop, css.SideBottom:
		a := layout.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height / 2}
		b := layout.Rect{X: rect.X, Y: rect.Y + rect.Height/2, Width: rect.Width, Height: rect.Height / 2}
		if side == css.SideTop {
			return a, b
		}
		return b, a
	}
	a := layout.Rect{X: rect.X, Y: rect.Y, Width: rect.Width / 2, Height: rect.Height}
	b := layout.Rect{X: rect.X + rect.Width/2, Y: rect.Y, Width: rect.Width / 2, Height: rect.Height}
	if side == css.SideLeft {
		return a, b
	}
	return b, a
}

func shade(c css.Color, f float64) css.Color {
	return css.Color{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

// tiles returns the top-left corners of the background image copies needed
// to cover bounds, with tiling anchored at the top-left of container.
func tiles(repeat css.BackgroundRepeat, bounds, container layout.Rect, imgW, imgH float64) []point {
	if imgW <= 0 || imgH <= 0 || bounds.Empty() {
		return nil
	}
	first := func(origin, lo, step float64) float64 {
		return origin + math.Floor((lo-origin)/step)*step
	}

	xs := []float64{container.X}
	if repeat == css.BackgroundRepeatRepeat || repeat == css.BackgroundRepeatRepeatX {
		xs = xs[:0]
		for x := first(container.X, bounds.X, imgW); x < bounds.Right(); x += imgW {
			xs = append(xs, x)
		}
	}
	ys := []float64{container.Y}
	if repeat == css.BackgroundRepeatRepeat || repeat == css.BackgroundRepeatRepeatY {
		ys = ys[:0]
		for y := first(container.Y, bounds.Y, imgH); y < bounds.Bottom(); y += imgH {
			ys = append(ys, y)
		}
	}

	var out []point
	for _, y := range ys {
		for _, x := range xs {
			if x+imgW <= bounds.X || x >= bounds.Right() || y+imgH <= bounds.Y || y >= bounds.Bottom() {
				continue
			}
			out = append(out, point{x, y})
		}
	}
	return out
}

// clipPolygon clips a convex or concave polygon to an axis-aligned rect,
// one rect edge at a time. It returns nil when nothing is left.
func clipPolygon(poly []point, clip layout.Rect) []point {
	edges := []struct {
		inside func(p point) bool
		cross  func(a, b point) point
	}{
		{func(p point) bool { return p.X >= clip.X }, func(a, b point) point { return atX(a, b, clip.X) }},
		{func(p point) bool { return p.X <= clip.Right() }, func(a, b point) point { return atX(a, b, clip.Right()) }},
		{func(p point) bool { return p.Y >= clip.Y }, func(a, b point) point { return atY(a, b, clip.Y) }},
		{func(p point) bool { return p.Y <= clip.Bottom() }, func(a, b point) point { return atY(a, b, clip.Bottom()) }},
	}
	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = nil
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && !e.inside(prev):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(cur):
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	if len(out) < 3 {
		return nil
	}
	return out
}

func atX(a, b point, x float64) point {
	t := (x - a.X) / (b.X - a.X)
	return point{x, a.Y + t*(b.Y-a.Y)}
}

func atY(a, b point, y float64) point {
	t := (y - a.Y) / (b.Y - a.Y)
	return point{a.X + t*(b.X-a.X), y}
}

// clipSpan clips the interval [lo, hi] to [min, max] and reports how much
// was cut from its start.
func clipSpan(lo, hi, minV, maxV float64) (clo, chi, skipped float64, ok bool) {
	clo, chi = math.Max(lo, minV), math.Min(hi, maxV)
	if chi <= clo {
		return 0, 0, 0, false
	}
	return clo, chi, clo - lo, true
}
