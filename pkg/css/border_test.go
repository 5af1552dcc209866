package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetBorder_Shorthand(t *testing.T) {
	style := ParseInlineStyle("border: 2px dashed red")
	want := BorderSide{Style: BorderStyleDashed, Width: 2, Color: Color{255, 0, 0, 1}}
	got := style.GetBorder()
	for _, side := range []Side{SideTop, SideRight, SideBottom, SideLeft} {
		if diff := cmp.Diff(want, got.Side(side)); diff != "" {
			t.Errorf("side %s mismatch (-want +got):\n%s", side, diff)
		}
	}
}

func TestGetBorder_DefaultsToMediumAndCurrentColor(t *testing.T) {
	style := ParseInlineStyle("color: blue; border-top: solid")
	top := style.GetBorder().Top
	if top.Width != BorderWidthMedium {
		t.Errorf("expected medium width, got %v", top.Width)
	}
	if top.Color != (Color{0, 0, 255, 1}) {
		t.Errorf("expected currentColor blue, got %+v", top.Color)
	}
}

func TestGetBorder_NoneAndHiddenHaveZeroWidth(t *testing.T) {
	style := ParseInlineStyle("border-style: none hidden solid; border-width: 4px")
	b := style.GetBorder()
	if b.Top.Width != 0 || b.Top.Style != BorderStyleNone {
		t.Errorf("top: expected none/0, got %+v", b.Top)
	}
	if b.Right.Width != 0 || b.Right.Style != BorderStyleHidden {
		t.Errorf("right: expected hidden/0, got %+v", b.Right)
	}
	if b.Bottom.Width != 4 || b.Bottom.Style != BorderStyleSolid {
		t.Errorf("bottom: expected solid/4, got %+v", b.Bottom)
	}
	if b.Left.Style != BorderStyleHidden {
		t.Errorf("left mirrors right: expected hidden, got %+v", b.Left)
	}
}

func TestGetBorder_WidthKeywords(t *testing.T) {
	style := ParseInlineStyle("border-style: solid; border-width: thin medium thick 7px")
	want := BoxEdge{Top: 1, Right: 3, Bottom: 5, Left: 7}
	if got := style.GetBorderWidth(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestParseBorderStyle(t *testing.T) {
	for i, name := range borderStyleNames {
		got, ok := ParseBorderStyle(name)
		if !ok || got != BorderStyle(i) {
			t.Errorf("%s: expected %d, got %d", name, i, got)
		}
		if got.String() != name {
			t.Errorf("String() round trip for %s gave %s", name, got.String())
		}
	}
	if _, ok := ParseBorderStyle("wavy"); ok {
		t.Error("expected unknown style to fail")
	}
}

func TestBorderSideVisible(t *testing.T) {
	if (BorderSide{Style: BorderStyleSolid, Width: 1, Color: Transparent}).Visible() {
		t.Error("transparent border should not be visible")
	}
	if !(BorderSide{Style: BorderStyleDotted, Width: 1, Color: Black}).Visible() {
		t.Error("expected dotted border to be visible")
	}
}
