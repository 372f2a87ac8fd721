package compiler

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapui/internal/markup"
	"github.com/leapstack-labs/leapui/internal/stylesheet"
)

// JoinError is returned when markup references class names the stylesheet
// never defines.
type JoinError struct {
	Component string
	Missing   []string
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("component %s: no stylesheet rule for class %s",
		e.Component, strings.Join(e.Missing, ", "))
}

// VerifyJoin parses css and checks that every className in fn has a
// top-level rule.
func VerifyJoin(fn *markup.Function, css string) error {
	classes, err := stylesheet.ClassSelectors(css)
	if err != nil {
		return fmt.Errorf("failed to parse generated stylesheet for %s: %w", fn.Name, err)
	}
	var missing []string
	for _, name := range fn.ClassNames() {
		if !classes[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &JoinError{Component: fn.Name, Missing: missing}
	}
	return nil
}
