package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	"github.com/spf13/cobra"
)

// CompileOptions holds options for the compile command.
type CompileOptions struct {
	CSSOnly    bool
	MarkupOnly bool
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	opts := &CompileOptions{}

	cmd := &cobra.Command{
		Use:   "compile <component>",
		Short: "Print the generated JSX and CSS for a component",
		Long: `Compile one component and print its JSX module and stylesheet
without writing anything to disk.

This is useful for inspecting generated code and debugging styles.

Output adapts to environment:
  - Terminal: Plain code
  - Piped/Scripted: Markdown with code blocks`,
		Example: `  # Print a component's module and stylesheet
  leapui compile card

  # Only the stylesheet
  leapui compile card --css-only

  # Save the module to a file
  leapui compile card --markup-only > Card.jsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.CSSOnly, "css-only", false, "Print only the stylesheet")
	cmd.Flags().BoolVar(&opts.MarkupOnly, "markup-only", false, "Print only the JSX module")
	cmd.MarkFlagsMutuallyExclusive("css-only", "markup-only")

	return cmd
}

func runCompile(cmd *cobra.Command, selector string, opts *CompileOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer
	c, err := cmdCtx.Engine.Compiler()
	if err != nil {
		return err
	}

	a, err := c.Compile(selector)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", selector, err)
	}

	showModule := !opts.CSSOnly
	showCSS := !opts.MarkupOnly

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := output.CompileOutput{Component: a.ComponentID, Function: a.Name, Hash: a.Hash}
		if showModule {
			out.Module = a.Module
		}
		if showCSS {
			out.CSS = a.CSS
		}
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Component: %s", a.Name))
		if showModule {
			r.Header(2, a.Name+".jsx")
			r.Code("jsx", a.Module)
		}
		if showCSS {
			r.Header(2, a.Name+".css")
			r.Code("css", a.CSS)
		}
	default:
		if showModule {
			r.Code("jsx", a.Module)
		}
		if showCSS {
			if showModule {
				r.Println("")
			}
			r.Code("css", a.CSS)
		}
	}

	if a.Module == "" && a.CSS == "" {
		return errors.New("component produced no output")
	}
	return nil
}
