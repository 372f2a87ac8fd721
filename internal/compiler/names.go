package compiler

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapui/internal/naming"
	"github.com/leapstack-labs/leapui/pkg/core"
)

// NameCollisionError is returned when several components generate the same
// function name, and with it the same module and stylesheet files.
type NameCollisionError struct {
	Function     string
	ComponentIDs []string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("components %s all generate %s",
		strings.Join(e.ComponentIDs, ", "), e.Function)
}

// functionOwners maps each generated function name to the components that
// produce it, in document order.
func functionOwners(doc *core.Document) map[string][]string {
	out := make(map[string][]string)
	for _, c := range doc.Components.All() {
		fn := naming.KebabToPascal(c.Name)
		out[fn] = append(out[fn], c.ID)
	}
	return out
}

// collision returns the error for comp when another component shares its
// function name, or nil.
func (c *Compiler) collision(comp *core.Component) *NameCollisionError {
	fn := naming.KebabToPascal(comp.Name)
	if owners := c.functions[fn]; len(owners) > 1 {
		return &NameCollisionError{Function: fn, ComponentIDs: owners}
	}
	return nil
}

// CheckNames reports the first component in ids whose function name is
// shared with any other component of the document.
func (c *Compiler) CheckNames(ids []string) error {
	for _, id := range ids {
		comp, ok := c.doc.Components.Get(id)
		if !ok {
			continue
		}
		if err := c.collision(comp); err != nil {
			return err
		}
	}
	return nil
}
