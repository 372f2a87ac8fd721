package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/spf13/cobra"
)

// NewStyleCommand creates the style command.
func NewStyleCommand() *cobra.Command {
	var width float64

	cmd := &cobra.Command{
		Use:   "style <component> <layer>",
		Short: "Show the resolved style of a layer at a viewport width",
		Long: `Resolve the effective CSS declarations of one layer at a viewport width.

Media queries whose breakpoint is at or below the width are applied in
order. Unset colors and typography fall back to the first entry of their
reference table, as in previews.

The layer is matched by ID first, then by name.`,
		Example: `  # Style of the card title at the default preview width
  leapui style card title

  # At a phone width
  leapui style card title --width 375`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStyle(cmd, args[0], args[1], width)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "Viewport width in pixels (default: preview.width)")

	return cmd
}

func runStyle(cmd *cobra.Command, component, layer string, width float64) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if width <= 0 && cmdCtx.Cfg.Preview != nil {
		width = cmdCtx.Cfg.Preview.Width
	}

	c, err := cmdCtx.Engine.Compiler()
	if err != nil {
		return err
	}
	comp, err := c.Registry().Select(component)
	if err != nil {
		return err
	}
	if comp.Layout == nil {
		return fmt.Errorf("component %s has no layout", comp.Name)
	}

	l := layertree.FindByID(comp.Layout, layer)
	if l == nil {
		l = layertree.FindByName(comp.Layout, layer)
	}
	if l == nil {
		return fmt.Errorf("layer %q not found in component %s", layer, comp.Name)
	}

	decls, err := c.PreviewResolver().ResolveAt(l, width)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	out := output.StyleOutput{
		Component:    comp.Name,
		Layer:        l.Base().Name,
		Width:        width,
		Declarations: make([]output.StyleDecl, 0, len(decls)),
	}
	for _, d := range decls {
		out.Declarations = append(out.Declarations, output.StyleDecl{Property: d.Property, Value: d.Value})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("%s / %s at %gpx", out.Component, out.Layer, width))
		for _, d := range out.Declarations {
			r.Println(output.FormatKeyValue(d.Property, d.Value))
		}
	default:
		r.Header(1, fmt.Sprintf("%s / %s at %gpx", out.Component, out.Layer, width))
		rows := make([][]string, 0, len(out.Declarations))
		for _, d := range out.Declarations {
			rows = append(rows, []string{d.Property, d.Value})
		}
		r.Table([]string{"Property", "Value"}, rows)
	}
	return nil
}
