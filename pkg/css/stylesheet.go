package css

import (
	"fmt"
	"strings"
)

// SelectorPart is one compound selector: tag, #id and .classes.
type SelectorPart struct {
	Element string
	ID      string
	Classes []string
}

// Combinator joins two selector parts.
type Combinator int

const (
	DescendantCombinator Combinator = iota
	ChildCombinator
)

// Selector is a complex selector. Parts[len-1] matches the subject element;
// Combinators[i] sits between Parts[i] and Parts[i+1].
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
	Specificity int
}

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations map[string]string // longhand property -> value
	Order        int
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS stylesheet content into rules. Malformed rules
// are skipped; the error is only returned for unbalanced braces.
func ParseStylesheet(css string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{Rules: make([]Rule, 0)}

	css = stripComments(css)
	if strings.TrimSpace(css) == "" {
		return stylesheet, nil
	}

	rules, err := splitRules(css)
	order := 0
	for _, ruleStr := range rules {
		bracePos := strings.Index(ruleStr, "{")
		if bracePos == -1 {
			continue
		}
		declarations := parseDeclarations(ruleStr[bracePos+1 : len(ruleStr)-1])
		for _, raw := range strings.Split(ruleStr[:bracePos], ",") {
			selector, ok := parseSelector(raw)
			if !ok {
				continue
			}
			stylesheet.Rules = append(stylesheet.Rules, Rule{
				Selector:     selector,
				Declarations: declarations,
				Order:        order,
			})
			order++
		}
	}
	return stylesheet, err
}

func stripComments(css string) string {
	var b strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start == -1 {
			b.WriteString(css)
			return b.String()
		}
		b.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end == -1 {
			return b.String()
		}
		css = css[start+2+end+2:]
	}
}

// splitRules splits CSS into individual "selector { ... }" rules
func splitRules(css string) ([]string, error) {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return rules, fmt.Errorf("unexpected '}' at offset %d", i)
			}
			if depth == 0 {
				if ruleStr := strings.TrimSpace(css[start : i+1]); ruleStr != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return rules, fmt.Errorf("unterminated rule block")
	}
	return rules, nil
}

// parseSelector parses a complex selector made of compound parts joined by
// whitespace or '>'.
func parseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selector{}, false
	}
	sel := Selector{Raw: raw}
	pending := DescendantCombinator
	for _, tok := range strings.Fields(strings.ReplaceAll(raw, ">", " > ")) {
		if tok == ">" {
			pending = ChildCombinator
			continue
		}
		part, ok := parseSelectorPart(tok)
		if !ok {
			return Selector{}, false
		}
		if len(sel.Parts) > 0 {
			sel.Combinators = append(sel.Combinators, pending)
		}
		pending = DescendantCombinator
		sel.Parts = append(sel.Parts, part)

		if part.ID != "" {
			sel.Specificity += 100
		}
		sel.Specificity += 10 * len(part.Classes)
		if part.Element != "" && part.Element != "*" {
			sel.Specificity++
		}
	}
	return sel, len(sel.Parts) > 0
}

func parseSelectorPart(tok string) (SelectorPart, bool) {
	var part SelectorPart
	i := strings.IndexAny(tok, ".#")
	if i == -1 {
		part.Element = strings.ToLower(tok)
		return part, true
	}
	part.Element = strings.ToLower(tok[:i])
	rest := tok[i:]
	for rest != "" {
		kind := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end == -1 {
			end = len(rest)
		}
		name := rest[:end]
		rest = rest[end:]
		if name == "" {
			return SelectorPart{}, false
		}
		if kind == '#' {
			part.ID = name
		} else {
			part.Classes = append(part.Classes, name)
		}
	}
	return part, true
}

// parseDeclarations parses "prop: value; ..." into expanded longhands.
func parseDeclarations(declStr string) map[string]string {
	style := NewStyle()
	for _, part := range strings.Split(declStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		colonPos := strings.Index(part, ":")
		if colonPos == -1 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(part[:colonPos]))
		value := strings.TrimSpace(part[colonPos+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if property != "" && value != "" {
			expandShorthand(style, property, value)
		}
	}
	return style.Properties
}
