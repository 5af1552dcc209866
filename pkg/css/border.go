package css

import "strings"

// BorderStyle is the border-style keyword of one side.
type BorderStyle int

const (
	BorderStyleNone BorderStyle = iota
	BorderStyleHidden
	BorderStyleSolid
	BorderStyleDashed
	BorderStyleDotted
	BorderStyleDouble
	BorderStyleGroove
	BorderStyleRidge
	BorderStyleInset
	BorderStyleOutset
)

var borderStyleNames = [...]string{
	BorderStyleNone:   "none",
	BorderStyleHidden: "hidden",
	BorderStyleSolid:  "solid",
	BorderStyleDashed: "dashed",
	BorderStyleDotted: "dotted",
	BorderStyleDouble: "double",
	BorderStyleGroove: "groove",
	BorderStyleRidge:  "ridge",
	BorderStyleInset:  "inset",
	BorderStyleOutset: "outset",
}

func (s BorderStyle) String() string {
	if int(s) < len(borderStyleNames) {
		return borderStyleNames[s]
	}
	return "none"
}

// ParseBorderStyle maps a keyword to its BorderStyle. Unknown keywords are none.
func ParseBorderStyle(v string) (BorderStyle, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, name := range borderStyleNames {
		if name == v {
			return BorderStyle(i), true
		}
	}
	return BorderStyleNone, false
}

func isBorderStyleKeyword(v string) bool {
	_, ok := ParseBorderStyle(v)
	return ok
}

// Border width keywords, in px.
const (
	BorderWidthThin   = 1
	BorderWidthMedium = 3
	BorderWidthThick  = 5
)

func parseBorderWidth(v string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "thin":
		return BorderWidthThin, true
	case "medium":
		return BorderWidthMedium, true
	case "thick":
		return BorderWidthThick, true
	}
	w, ok := ParseLength(v)
	if !ok || w < 0 {
		return 0, false
	}
	return w, true
}

// BorderSide is the computed border of a single side.
type BorderSide struct {
	Style BorderStyle
	Width float64
	Color Color
}

// Visible reports whether the side paints anything.
func (b BorderSide) Visible() bool {
	return b.Width > 0 && b.Style != BorderStyleNone && b.Style != BorderStyleHidden && b.Color.A > 0
}

// BorderPropertySet is the computed border of all four sides.
type BorderPropertySet struct {
	Top    BorderSide
	Right  BorderSide
	Bottom BorderSide
	Left   BorderSide
}

// NoBorders is the all-zero border set.
var NoBorders = BorderPropertySet{}

// Widths returns the four widths as a BoxEdge.
func (b BorderPropertySet) Widths() BoxEdge {
	return BoxEdge{Top: b.Top.Width, Right: b.Right.Width, Bottom: b.Bottom.Width, Left: b.Left.Width}
}

// Side returns the border of the given side.
func (b BorderPropertySet) Side(side Side) BorderSide {
	switch side {
	case SideTop:
		return b.Top
	case SideRight:
		return b.Right
	case SideBottom:
		return b.Bottom
	default:
		return b.Left
	}
}

// Side names one edge of a box.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

func (s Side) String() string {
	return sideNames[s]
}

// GetBorder returns the computed border of all four sides. A side whose style
// is none or hidden has a computed width of zero but keeps its style, since
// hidden matters to border conflict resolution.
func (s *Style) GetBorder() BorderPropertySet {
	return BorderPropertySet{
		Top:    s.borderSide("top"),
		Right:  s.borderSide("right"),
		Bottom: s.borderSide("bottom"),
		Left:   s.borderSide("left"),
	}
}

// GetBorderWidth returns the computed border width for all four sides
func (s *Style) GetBorderWidth() BoxEdge {
	return s.GetBorder().Widths()
}

// GetBorderStyle returns the border style for each side.
func (s *Style) GetBorderStyle() [4]BorderStyle {
	b := s.GetBorder()
	return [4]BorderStyle{b.Top.Style, b.Right.Style, b.Bottom.Style, b.Left.Style}
}

func (s *Style) borderSide(side string) BorderSide {
	var result BorderSide

	if v, ok := s.Get("border-" + side + "-style"); ok {
		result.Style, _ = ParseBorderStyle(v)
	}

	if result.Style != BorderStyleNone && result.Style != BorderStyleHidden {
		result.Width = BorderWidthMedium
		if v, ok := s.Get("border-" + side + "-width"); ok {
			if w, ok := parseBorderWidth(v); ok {
				result.Width = w
			}
		}
	}

	result.Color = s.GetColor()
	if v, ok := s.Get("border-" + side + "-color"); ok {
		if c, ok := ParseColor(v); ok {
			result.Color = c
		}
	}
	return result
}
