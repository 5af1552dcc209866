package css

import (
	"strconv"
	"strings"
)

// LengthKind distinguishes auto, fixed and percentage lengths.
type LengthKind int

const (
	LengthAuto LengthKind = iota
	LengthFixed
	LengthPercent
)

// Length is a resolved width/height value. Fixed lengths are in px.
type Length struct {
	Value float64
	Kind  LengthKind
}

// IsVariable reports an auto (intrinsic) length.
func (l Length) IsVariable() bool { return l.Kind == LengthAuto }

func (l Length) IsPercent() bool { return l.Kind == LengthPercent }

func (l Length) IsFixed() bool { return l.Kind == LengthFixed }

func (l Length) String() string {
	switch l.Kind {
	case LengthFixed:
		return strconv.FormatFloat(l.Value, 'g', -1, 64) + "px"
	case LengthPercent:
		return strconv.FormatFloat(l.Value, 'g', -1, 64) + "%"
	}
	return "auto"
}

// ParseLengthValue parses auto, N%, Npx or a bare number.
func ParseLengthValue(v string) Length {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		if n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64); err == nil {
			return Length{Value: n, Kind: LengthPercent}
		}
		return Length{}
	}
	if n, ok := ParseLength(v); ok && n >= 0 {
		return Length{Value: n, Kind: LengthFixed}
	}
	return Length{}
}

// AsLength returns property as a Length, auto when unset or unparsable.
func (s *Style) AsLength(property string) Length {
	v, ok := s.Get(property)
	if !ok {
		return Length{}
	}
	return ParseLengthValue(v)
}

// IsAutoHeight reports height: auto.
func (s *Style) IsAutoHeight() bool {
	return s.AsLength("height").IsVariable()
}

// HasAbsoluteUnit reports whether property resolves to a fixed length.
func (s *Style) HasAbsoluteUnit(property string) bool {
	return s.AsLength(property).IsFixed()
}

// BorderCollapse represents the border-collapse property value
type BorderCollapse string

const (
	BorderCollapseSeparate BorderCollapse = "separate"
	BorderCollapseCollapse BorderCollapse = "collapse"
)

// GetBorderCollapse returns the border-collapse value and whether it was declared.
func (s *Style) GetBorderCollapse() (BorderCollapse, bool) {
	v, ok := s.Get("border-collapse")
	if !ok {
		return BorderCollapseSeparate, false
	}
	if strings.TrimSpace(v) == string(BorderCollapseCollapse) {
		return BorderCollapseCollapse, true
	}
	return BorderCollapseSeparate, true
}

// IsCollapseBorders reports border-collapse: collapse.
func (s *Style) IsCollapseBorders() bool {
	c, _ := s.GetBorderCollapse()
	return c == BorderCollapseCollapse
}

// GetBorderHSpacing returns the horizontal border-spacing in px.
func (s *Style) GetBorderHSpacing() float64 {
	return s.getLengthOrZero("-l14-border-spacing-h")
}

// GetBorderVSpacing returns the vertical border-spacing in px.
func (s *Style) GetBorderVSpacing() float64 {
	return s.getLengthOrZero("-l14-border-spacing-v")
}

// TableLayout represents the table-layout property value
type TableLayout string

const (
	TableLayoutAuto  TableLayout = "auto"
	TableLayoutFixed TableLayout = "fixed"
)

func (s *Style) GetTableLayout() TableLayout {
	if s.Is("table-layout", "fixed") {
		return TableLayoutFixed
	}
	return TableLayoutAuto
}

// IsShowEmptyCells is false only for empty-cells: hide.
func (s *Style) IsShowEmptyCells() bool {
	return !s.Is("empty-cells", "hide")
}
