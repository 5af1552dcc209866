package css

import (
	"strconv"
	"strings"
)

// Style holds the resolved declarations of one element, keyed by longhand
// property name. Shorthands are expanded on the way in.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	if s == nil {
		return "", false
	}
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Is reports whether property is set to the given keyword (case-insensitive).
func (s *Style) Is(property, keyword string) bool {
	val, ok := s.Get(property)
	return ok && strings.EqualFold(strings.TrimSpace(val), keyword)
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns left + right.
func (e BoxEdge) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns top + bottom.
func (e BoxEdge) Vertical() float64 { return e.Top + e.Bottom }

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("margin-top"),
		Right:  s.getLengthOrZero("margin-right"),
		Bottom: s.getLengthOrZero("margin-bottom"),
		Left:   s.getLengthOrZero("margin-left"),
	}
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("padding-top"),
		Right:  s.getLengthOrZero("padding-right"),
		Bottom: s.getLengthOrZero("padding-bottom"),
		Left:   s.getLengthOrZero("padding-left"),
	}
}

func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

// ParseInlineStyle parses the contents of a style attribute.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for property, value := range parseDeclarations(styleAttr) {
		style.Set(property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin", "padding":
		expandBoxProperty(style, property, "", value)
	case "border":
		for _, side := range sideNames {
			expandBorderSide(style, side, value)
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		expandBorderSide(style, strings.TrimPrefix(property, "border-"), value)
	case "border-width", "border-style", "border-color":
		expandBoxProperty(style, "border", strings.TrimPrefix(property, "border"), value)
	case "border-spacing":
		parts := strings.Fields(value)
		switch len(parts) {
		case 1:
			style.Set("-l14-border-spacing-h", parts[0])
			style.Set("-l14-border-spacing-v", parts[0])
		case 2:
			style.Set("-l14-border-spacing-h", parts[0])
			style.Set("-l14-border-spacing-v", parts[1])
		}
	case "background":
		expandBackground(style, value)
	default:
		style.Set(property, value)
	}
}

var sideNames = [4]string{"top", "right", "bottom", "left"}

// expandBoxProperty expands the 1-4 value box shorthands ("10px 20px" is
// vertical then horizontal). suffix is appended after the side name, so
// border-width becomes border-top-width etc.
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var vals [4]string
	switch len(parts) {
	case 1:
		vals = [4]string{parts[0], parts[0], parts[0], parts[0]}
	case 2:
		vals = [4]string{parts[0], parts[1], parts[0], parts[1]}
	case 3:
		vals = [4]string{parts[0], parts[1], parts[2], parts[1]}
	case 4:
		vals = [4]string{parts[0], parts[1], parts[2], parts[3]}
	default:
		return
	}
	for i, side := range sideNames {
		style.Set(prefix+"-"+side+suffix, vals[i])
	}
}

// expandBorderSide expands "1px solid black" style values for one side.
// Omitted components reset to their initial values.
func expandBorderSide(style *Style, side, value string) {
	width, bstyle, color := "medium", "none", ""
	for _, part := range strings.Fields(value) {
		switch {
		case isBorderWidth(part):
			width = part
		case isBorderStyleKeyword(part):
			bstyle = strings.ToLower(part)
		default:
			color = part
		}
	}
	style.Set("border-"+side+"-width", width)
	style.Set("border-"+side+"-style", bstyle)
	if color != "" {
		style.Set("border-"+side+"-color", color)
	} else {
		delete(style.Properties, "border-"+side+"-color")
	}
}

func expandBackground(style *Style, value string) {
	for _, part := range strings.Fields(value) {
		if _, ok := parseURLValue(part); ok {
			style.Set("background-image", part)
			continue
		}
		switch part {
		case "repeat", "no-repeat", "repeat-x", "repeat-y":
			style.Set("background-repeat", part)
		default:
			if _, ok := ParseColor(part); ok {
				style.Set("background-color", part)
			}
		}
	}
}

func isBorderWidth(v string) bool {
	switch strings.ToLower(v) {
	case "thin", "medium", "thick":
		return true
	}
	_, ok := ParseLength(v)
	return ok
}

// FontWeight represents the font-weight property value
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// GetFontWeight returns the font-weight value (default: normal)
func (s *Style) GetFontWeight() FontWeight {
	if weight, ok := s.Get("font-weight"); ok {
		switch weight {
		case "bold", "700", "800", "900":
			return FontWeightBold
		}
	}
	return FontWeightNormal
}

// GetFontSize returns the font-size in pixels (default: 16px)
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return 16.0
}

// GetLineHeight returns the line-height in pixels (default: 1.2 * font-size)
func (s *Style) GetLineHeight() float64 {
	if lh, ok := s.GetLength("line-height"); ok {
		return lh
	}
	return s.GetFontSize() * 1.2
}

// GetColor returns the text color (default: black)
func (s *Style) GetColor() Color {
	if colorStr, ok := s.Get("color"); ok {
		if color, ok := ParseColor(colorStr); ok {
			return color
		}
	}
	return Black
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock            DisplayType = "block"
	DisplayInline           DisplayType = "inline"
	DisplayInlineBlock      DisplayType = "inline-block"
	DisplayNone             DisplayType = "none"
	DisplayTable            DisplayType = "table"
	DisplayTableRowGroup    DisplayType = "table-row-group"
	DisplayTableHeaderGroup DisplayType = "table-header-group"
	DisplayTableFooterGroup DisplayType = "table-footer-group"
	DisplayTableRow         DisplayType = "table-row"
	DisplayTableCell        DisplayType = "table-cell"
	DisplayTableColumn      DisplayType = "table-column"
	DisplayTableColumnGroup DisplayType = "table-column-group"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	display, ok := s.Get("display")
	if !ok {
		return DisplayBlock
	}
	switch d := DisplayType(strings.ToLower(strings.TrimSpace(display))); d {
	case DisplayInline, DisplayInlineBlock, DisplayNone, DisplayTable,
		DisplayTableRowGroup, DisplayTableHeaderGroup, DisplayTableFooterGroup,
		DisplayTableRow, DisplayTableCell, DisplayTableColumn, DisplayTableColumnGroup:
		return d
	}
	return DisplayBlock
}

// IsRowGroup reports whether d is one of the three row-group displays.
func (d DisplayType) IsRowGroup() bool {
	return d == DisplayTableRowGroup || d == DisplayTableHeaderGroup || d == DisplayTableFooterGroup
}

// FloatType represents the float property value
type FloatType string

const (
	FloatNone  FloatType = "none"
	FloatLeft  FloatType = "left"
	FloatRight FloatType = "right"
)

func (s *Style) GetFloat() FloatType {
	if val, ok := s.Get("float"); ok {
		switch FloatType(strings.TrimSpace(val)) {
		case FloatLeft:
			return FloatLeft
		case FloatRight:
			return FloatRight
		}
	}
	return FloatNone
}

// GetTextAlign returns left, right or center (default: left).
func (s *Style) GetTextAlign() string {
	if val, ok := s.Get("text-align"); ok {
		switch v := strings.TrimSpace(val); v {
		case "right", "center":
			return v
		}
	}
	return "left"
}

// VerticalAlign represents the vertical-align property value
type VerticalAlign string

const (
	VerticalAlignBaseline VerticalAlign = "baseline"
	VerticalAlignTop      VerticalAlign = "top"
	VerticalAlignMiddle   VerticalAlign = "middle"
	VerticalAlignBottom   VerticalAlign = "bottom"
)

// GetVerticalAlign returns the vertical-align value (default: baseline)
func (s *Style) GetVerticalAlign() VerticalAlign {
	if align, ok := s.Get("vertical-align"); ok {
		switch align {
		case "top":
			return VerticalAlignTop
		case "middle":
			return VerticalAlignMiddle
		case "bottom":
			return VerticalAlignBottom
		}
	}
	return VerticalAlignBaseline
}

// IsVisible is false for visibility: hidden and collapse.
func (s *Style) IsVisible() bool {
	return !s.Is("visibility", "hidden") && !s.Is("visibility", "collapse")
}

// GetBackgroundColor returns the background color, if any is set.
func (s *Style) GetBackgroundColor() (Color, bool) {
	val, ok := s.Get("background-color")
	if !ok {
		return Color{}, false
	}
	c, ok := ParseColor(val)
	if !ok || c.A == 0 {
		return Color{}, false
	}
	return c, true
}

// GetBackgroundImage returns the url() of background-image, if any.
func (s *Style) GetBackgroundImage() (string, bool) {
	val, ok := s.Get("background-image")
	if !ok {
		return "", false
	}
	return parseURLValue(val)
}

// BackgroundRepeat represents the background-repeat property value
type BackgroundRepeat string

const (
	BackgroundRepeatRepeat   BackgroundRepeat = "repeat"
	BackgroundRepeatNoRepeat BackgroundRepeat = "no-repeat"
	BackgroundRepeatRepeatX  BackgroundRepeat = "repeat-x"
	BackgroundRepeatRepeatY  BackgroundRepeat = "repeat-y"
)

func (s *Style) GetBackgroundRepeat() BackgroundRepeat {
	if val, ok := s.Get("background-repeat"); ok {
		switch BackgroundRepeat(val) {
		case BackgroundRepeatNoRepeat, BackgroundRepeatRepeatX, BackgroundRepeatRepeatY:
			return BackgroundRepeat(val)
		}
	}
	return BackgroundRepeatRepeat
}

// parseURLValue extracts the path from url(...), with or without quotes.
func parseURLValue(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "url(") || !strings.HasSuffix(value, ")") {
		return "", false
	}
	inner := strings.TrimSpace(value[4 : len(value)-1])
	inner = strings.Trim(inner, `"'`)
	if inner == "" {
		return "", false
	}
	return inner, true
}
