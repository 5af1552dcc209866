package css

import (
	"sort"
	"strings"

	"l14tables/pkg/html"
)

// inheritedProperties are copied from the parent's computed style when the
// element does not declare them.
var inheritedProperties = []string{
	"color",
	"font-size",
	"font-weight",
	"line-height",
	"text-align",
	"visibility",
	"empty-cells",
	"border-collapse",
	"-l14-border-spacing-h",
	"-l14-border-spacing-v",
}

// applyUserAgentStyles applies the default table presentation.
func applyUserAgentStyles(node *html.Node, style *Style) {
	switch node.TagName {
	case "table":
		style.Set("display", string(DisplayTable))
		style.Set("-l14-border-spacing-h", "2px")
		style.Set("-l14-border-spacing-v", "2px")
	case "thead":
		style.Set("display", string(DisplayTableHeaderGroup))
	case "tbody":
		style.Set("display", string(DisplayTableRowGroup))
	case "tfoot":
		style.Set("display", string(DisplayTableFooterGroup))
	case "tr":
		style.Set("display", string(DisplayTableRow))
	case "td":
		style.Set("display", string(DisplayTableCell))
		style.Set("vertical-align", "middle")
	case "th":
		style.Set("display", string(DisplayTableCell))
		style.Set("vertical-align", "middle")
		style.Set("font-weight", "bold")
	case "col":
		style.Set("display", string(DisplayTableColumn))
	case "colgroup":
		style.Set("display", string(DisplayTableColumnGroup))
	case "span", "a", "b", "i", "em", "strong":
		style.Set("display", string(DisplayInline))
		if node.TagName == "b" || node.TagName == "strong" {
			style.Set("font-weight", "bold")
		}
	case "br":
		style.Set("display", string(DisplayInline))
	}
}

// ComputeStyle computes the final style for a node by applying the cascade.
// parent may be nil for the root.
func ComputeStyle(node *html.Node, stylesheets []*Stylesheet, parent *Style) *Style {
	finalStyle := NewStyle()

	if parent != nil {
		for _, prop := range inheritedProperties {
			if v, ok := parent.Get(prop); ok {
				finalStyle.Set(prop, v)
			}
		}
	}

	applyUserAgentStyles(node, finalStyle)

	allRules := make([]Rule, 0)
	for _, stylesheet := range stylesheets {
		for _, rule := range stylesheet.Rules {
			if MatchesSelector(node, rule.Selector) {
				allRules = append(allRules, rule)
			}
		}
	}

	// Lower specificity first; later rules win ties.
	sort.SliceStable(allRules, func(i, j int) bool {
		return allRules[i].Selector.Specificity < allRules[j].Selector.Specificity
	})
	for _, rule := range allRules {
		for property, value := range rule.Declarations {
			finalStyle.Set(property, value)
		}
	}

	// Inline styles have highest specificity
	if styleAttr, ok := node.GetAttribute("style"); ok {
		for property, value := range ParseInlineStyle(styleAttr).Properties {
			finalStyle.Set(property, value)
		}
	}

	return finalStyle
}

// ApplyStylesToDocument parses the document's stylesheets and computes a
// style for every element node.
func ApplyStylesToDocument(doc *html.Document) map[*html.Node]*Style {
	styles := make(map[*html.Node]*Style)

	stylesheets := make([]*Stylesheet, 0, len(doc.Stylesheets))
	for _, cssText := range doc.Stylesheets {
		stylesheet, _ := ParseStylesheet(cssText)
		stylesheets = append(stylesheets, stylesheet)
	}

	applyStylesToNode(doc.Root, stylesheets, styles, nil)
	return styles
}

func applyStylesToNode(node *html.Node, stylesheets []*Stylesheet, styles map[*html.Node]*Style, parent *Style) {
	if node.Type == html.ElementNode && node.TagName != "document" {
		style := ComputeStyle(node, stylesheets, parent)
		styles[node] = style
		parent = style
	}
	for _, child := range node.Children {
		applyStylesToNode(child, stylesheets, styles, parent)
	}
}

// MatchesSelector returns true if the node matches the complex selector
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode || len(selector.Parts) == 0 {
		return false
	}
	return matchesFrom(node, selector, len(selector.Parts)-1)
}

func matchesFrom(node *html.Node, selector Selector, partIndex int) bool {
	if !matchesSelectorPart(node, selector.Parts[partIndex]) {
		return false
	}
	if partIndex == 0 {
		return true
	}

	switch selector.Combinators[partIndex-1] {
	case ChildCombinator:
		return isElement(node.Parent) && matchesFrom(node.Parent, selector, partIndex-1)
	default:
		for anc := node.Parent; isElement(anc); anc = anc.Parent {
			if matchesFrom(anc, selector, partIndex-1) {
				return true
			}
		}
		return false
	}
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.TagName != "document"
}

func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" {
		if id, _ := node.GetAttribute("id"); id != part.ID {
			return false
		}
	}
	if len(part.Classes) > 0 {
		classAttr, _ := node.GetAttribute("class")
		classes := strings.Fields(classAttr)
		for _, want := range part.Classes {
			found := false
			for _, c := range classes {
				if c == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}
