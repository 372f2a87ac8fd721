// Package stylesheet emits the CSS for generated components.
//
// It walks the same layer tree as the markup generator, independently, and
// derives every selector from naming.ClassName.
package stylesheet

import (
	"strings"

	"github.com/leapstack-labs/leapui/internal/style"
)

const indentUnit = "  "

// Rule is a top-level stylesheet rule.
type Rule interface {
	write(sb *strings.Builder, depth int)
}

// StyleRule is "selector { declarations }".
type StyleRule struct {
	Selector     string
	Declarations style.Declarations
	// LayerID is the layer the rule was generated from.
	LayerID string
}

// MediaRule is "@media (min-width: Npx) { rules }".
type MediaRule struct {
	MinWidth float64
	// QueryID is the media query the block was generated from.
	QueryID string
	Rules   []*StyleRule
}

// Condition returns the media condition, e.g. "(min-width: 768px)".
func (m *MediaRule) Condition() string {
	return "(min-width: " + style.FormatPx(m.MinWidth) + ")"
}

// Sheet is an ordered list of rules.
type Sheet struct {
	Rules []Rule
}

// Append adds the rules of other to s.
func (s *Sheet) Append(other *Sheet) {
	if other == nil {
		return
	}
	s.Rules = append(s.Rules, other.Rules...)
}

// String renders the sheet as CSS text. Rules are separated by a blank line.
func (s *Sheet) String() string {
	var sb strings.Builder
	for i, r := range s.Rules {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r.write(&sb, 0)
	}
	return sb.String()
}

// Selectors returns every style rule selector, including those nested in
// media blocks, in emission order.
func (s *Sheet) Selectors() []string {
	var out []string
	for _, r := range s.Rules {
		switch r := r.(type) {
		case *StyleRule:
			out = append(out, r.Selector)
		case *MediaRule:
			for _, sr := range r.Rules {
				out = append(out, sr.Selector)
			}
		}
	}
	return out
}

func (r *StyleRule) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	sb.WriteString(indent)
	sb.WriteString(r.Selector)
	sb.WriteString(" {\n")
	for _, d := range r.Declarations {
		sb.WriteString(indent + indentUnit)
		sb.WriteString(d.Property)
		sb.WriteString(": ")
		sb.WriteString(d.Value)
		sb.WriteString(";\n")
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}

func (m *MediaRule) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	sb.WriteString(indent)
	sb.WriteString("@media ")
	sb.WriteString(m.Condition())
	sb.WriteString(" {\n")
	for i, r := range m.Rules {
		if i > 0 {
			sb.WriteByte('\n')
		}
		r.write(sb, depth+1)
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")
}
