package css

import "testing"

func TestParseStylesheet_SelectorLists(t *testing.T) {
	sheet, err := ParseStylesheet(`/* header */ td, th { border: 1px solid } #x.y.z { color: red }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(sheet.Rules))
	}
	if sheet.Rules[0].Selector.Parts[0].Element != "td" || sheet.Rules[1].Selector.Parts[0].Element != "th" {
		t.Errorf("unexpected selectors: %+v", sheet.Rules)
	}
	if got := sheet.Rules[2].Selector.Specificity; got != 120 {
		t.Errorf("expected specificity 120, got %d", got)
	}
	if v := sheet.Rules[0].Declarations["border-left-style"]; v != "solid" {
		t.Errorf("expected expanded border-left-style, got %q", v)
	}
}

func TestParseStylesheet_Unbalanced(t *testing.T) {
	sheet, err := ParseStylesheet(`td { color: red } tr { color: blue`)
	if err == nil {
		t.Error("expected error for unterminated block")
	}
	if len(sheet.Rules) != 1 {
		t.Errorf("expected the complete rule to survive, got %d", len(sheet.Rules))
	}
}

func TestParseDeclarations_Important(t *testing.T) {
	decls := parseDeclarations("width: 10px !important; border-top: 2px double")
	if decls["width"] != "10px" {
		t.Errorf("expected !important to be dropped, got %q", decls["width"])
	}
	if decls["border-top-style"] != "double" || decls["border-top-width"] != "2px" {
		t.Errorf("unexpected border-top expansion: %v", decls)
	}
}
