package stylesheet

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// ParsedRule is a style rule read back from CSS text.
type ParsedRule struct {
	Selector string
	// Media is the @media prelude for nested rules, e.g. "(min-width: 768px)".
	Media        string
	Declarations map[string]string
}

// Parse reads CSS text back into flat rules. Rules with several selectors
// yield one ParsedRule per selector. At-rules other than @media are skipped.
func Parse(text string) ([]ParsedRule, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}

	var out []ParsedRule
	var collect func(rules []*css.Rule, media string)
	collect = func(rules []*css.Rule, media string) {
		for _, r := range rules {
			if r.Kind == css.AtRule {
				if r.Name == "@media" {
					collect(r.Rules, strings.TrimSpace(r.Prelude))
				}
				continue
			}
			decls := make(map[string]string, len(r.Declarations))
			for _, d := range r.Declarations {
				decls[d.Property] = d.Value
			}
			for _, sel := range r.Selectors {
				out = append(out, ParsedRule{Selector: sel, Media: media, Declarations: decls})
			}
		}
	}
	collect(sheet.Rules, "")
	return out, nil
}

// ClassSelectors returns the class names that have a top-level rule
// consisting of a single class selector, e.g. ".Hero-root" → "Hero-root".
// Pseudo-class rules and rules inside @media are ignored.
func ClassSelectors(text string) (map[string]bool, error) {
	rules, err := Parse(text)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool)
	for _, r := range rules {
		if r.Media != "" || !strings.HasPrefix(r.Selector, ".") {
			continue
		}
		name := r.Selector[1:]
		if strings.ContainsAny(name, ":.# >+~[") {
			continue
		}
		out[name] = true
	}
	return out, nil
}
