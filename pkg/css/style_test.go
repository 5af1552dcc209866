package css

import "testing"

func TestParseInlineStyle_SingleProperty(t *testing.T) {
	style := ParseInlineStyle("color: red")
	value, ok := style.Get("color")
	if !ok || value != "red" {
		t.Error("expected color='red'")
	}
}

func TestParseInlineStyle_MultipleProperties(t *testing.T) {
	style := ParseInlineStyle("color: red; width: 100px")
	color, _ := style.Get("color")
	width, _ := style.Get("width")
	if color != "red" || width != "100px" {
		t.Error("expected both properties to parse")
	}
}

func TestParseInlineStyle_PaddingShorthand(t *testing.T) {
	tests := []struct {
		value string
		want  BoxEdge
	}{
		{"15px", BoxEdge{15, 15, 15, 15}},
		{"10px 20px", BoxEdge{10, 20, 10, 20}},
		{"10px 20px 30px", BoxEdge{10, 20, 30, 20}},
		{"10px 20px 30px 40px", BoxEdge{10, 20, 30, 40}},
	}
	for _, tt := range tests {
		got := ParseInlineStyle("padding: " + tt.value).GetPadding()
		if got != tt.want {
			t.Errorf("padding %q: expected %+v, got %+v", tt.value, tt.want, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]Color{
		"red":             {255, 0, 0, 1},
		"#00f":            {0, 0, 255, 1},
		"#102030":         {16, 32, 48, 1},
		"rgb(1, 2, 3)":    {1, 2, 3, 1},
		"rgba(1,2,3,0.5)": {1, 2, 3, 0.5},
		"transparent":     {0, 0, 0, 0},
	}
	for name, expected := range tests {
		color, ok := ParseColor(name)
		if !ok || color != expected {
			t.Errorf("color %s: expected %+v, got %+v", name, expected, color)
		}
	}
	if _, ok := ParseColor("#12345"); ok {
		t.Error("expected 5-digit hex to be rejected")
	}
}

func TestGetVerticalAlign(t *testing.T) {
	tests := map[string]VerticalAlign{
		"top":      VerticalAlignTop,
		"middle":   VerticalAlignMiddle,
		"bottom":   VerticalAlignBottom,
		"text-top": VerticalAlignBaseline,
		"baseline": VerticalAlignBaseline,
		"sub":      VerticalAlignBaseline,
	}
	for value, expected := range tests {
		style := ParseInlineStyle("vertical-align: " + value)
		if got := style.GetVerticalAlign(); got != expected {
			t.Errorf("vertical-align %s: expected %s, got %s", value, expected, got)
		}
	}
}

func TestAsLength(t *testing.T) {
	style := ParseInlineStyle("width: 40%; height: 12px; min-width: auto")
	if l := style.AsLength("width"); !l.IsPercent() || l.Value != 40 {
		t.Errorf("expected 40%%, got %v", l)
	}
	if l := style.AsLength("height"); !l.IsFixed() || l.Value != 12 {
		t.Errorf("expected 12px, got %v", l)
	}
	if l := style.AsLength("min-width"); !l.IsVariable() {
		t.Errorf("expected auto, got %v", l)
	}
	if l := style.AsLength("max-width"); !l.IsVariable() {
		t.Errorf("expected unset length to be auto, got %v", l)
	}
}

func TestTableProperties(t *testing.T) {
	style := ParseInlineStyle("border-collapse: collapse; border-spacing: 4px 6px; table-layout: fixed; empty-cells: hide; visibility: hidden")
	if !style.IsCollapseBorders() {
		t.Error("expected collapsed borders")
	}
	if style.GetBorderHSpacing() != 4 || style.GetBorderVSpacing() != 6 {
		t.Errorf("expected spacing 4/6, got %v/%v", style.GetBorderHSpacing(), style.GetBorderVSpacing())
	}
	if style.GetTableLayout() != TableLayoutFixed {
		t.Error("expected fixed table layout")
	}
	if style.IsShowEmptyCells() {
		t.Error("expected empty-cells: hide")
	}
	if style.IsVisible() {
		t.Error("expected hidden visibility")
	}

	if _, declared := NewStyle().GetBorderCollapse(); declared {
		t.Error("expected border-collapse to be undeclared on an empty style")
	}
}

func TestBackgroundShorthand(t *testing.T) {
	style := ParseInlineStyle("background: #ff0000 url('tile.png') no-repeat")
	if c, ok := style.GetBackgroundColor(); !ok || c != (Color{255, 0, 0, 1}) {
		t.Errorf("expected red background, got %+v", c)
	}
	if img, ok := style.GetBackgroundImage(); !ok || img != "tile.png" {
		t.Errorf("expected tile.png, got %q", img)
	}
	if style.GetBackgroundRepeat() != BackgroundRepeatNoRepeat {
		t.Error("expected no-repeat")
	}
}

func TestGetFloat(t *testing.T) {
	if ParseInlineStyle("float: right").GetFloat() != FloatRight {
		t.Error("expected float right")
	}
	if ParseInlineStyle("float: sideways").GetFloat() != FloatNone {
		t.Error("expected unknown float to be none")
	}
	if NewStyle().GetTextAlign() != "left" {
		t.Error("expected default text-align left")
	}
}
