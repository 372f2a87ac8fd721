package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/pkg/core"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Severity string   // Minimum severity: error, warning, info
	Disable  []string // Diagnostic codes to hide
}

// ErrCheckFailed is returned when check reports at least one error.
var ErrCheckFailed = errors.New("design document has errors")

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the design document",
		Long: `Validate every component in the design document without writing output.

Reports unresolved references, missing or cyclic embedded components,
unbound props and unsupported styles. Exits non-zero when any error is found.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table
  - JSON: Machine-readable format`,
		Example: `  # Check the document
  leapui check

  # Only report errors
  leapui check --severity error

  # Hide unused prop warnings
  leapui check --disable W002`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity: error, warning, info")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Diagnostic codes to hide")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.Renderer

	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q (valid: error, warning, info)", opts.Severity)
	}

	if err := cmdCtx.Cfg.ValidateDocument(); err != nil {
		return err
	}

	var diags []compiler.Diagnostic
	components := 0
	cfg := engineConfig(cmdCtx.Cfg, cmdCtx.Logger)
	cfg.StatePath = ""
	eng, err := engine.New(cfg)
	if err != nil {
		// A document that does not load is reported like any other finding.
		diags = append(diags, compiler.Diagnostic{
			Severity: core.SeverityError,
			Code:     compiler.ErrorCode(err),
			Message:  err.Error(),
			Err:      err,
		})
	} else {
		defer func() { _ = eng.Close() }()
		c, err := eng.Compiler()
		if err != nil {
			return err
		}
		components = c.Document().Components.Len()
		diags = c.Validate()
	}

	diags = filterDiagnostics(diags, threshold, opts.Disable)
	summary := summarize(diags, components)
	renderDiagnostics(r, diags, summary)

	if summary.Errors > 0 {
		return ErrCheckFailed
	}
	return nil
}

func filterDiagnostics(diags []compiler.Diagnostic, threshold core.Severity, disabled []string) []compiler.Diagnostic {
	var out []compiler.Diagnostic
	for _, d := range diags {
		if d.Severity > threshold {
			continue
		}
		if slices.ContainsFunc(disabled, func(code string) bool {
			return strings.EqualFold(strings.TrimSpace(code), d.Code)
		}) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func summarize(diags []compiler.Diagnostic, components int) output.CheckSummary {
	s := output.CheckSummary{Components: components}
	for _, d := range diags {
		switch d.Severity {
		case core.SeverityError:
			s.Errors++
		case core.SeverityWarning:
			s.Warnings++
		case core.SeverityInfo:
			s.Infos++
		}
	}
	return s
}

func renderDiagnostics(r *output.Renderer, diags []compiler.Diagnostic, summary output.CheckSummary) {
	if r.EffectiveMode() == output.ModeJSON {
		out := output.CheckOutput{
			Diagnostics: make([]output.DiagnosticInfo, 0, len(diags)),
			Summary:     summary,
		}
		for _, d := range diags {
			out.Diagnostics = append(out.Diagnostics, output.DiagnosticInfo{
				Component: d.Component,
				Layer:     d.LayerID,
				Severity:  d.Severity.String(),
				Code:      d.Code,
				Message:   d.Message,
			})
		}
		_ = r.JSON(out)
		return
	}

	if len(diags) == 0 {
		r.Success(fmt.Sprintf("%d components checked, no issues found", summary.Components))
		return
	}

	r.Header(1, "Diagnostics")
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		component := d.Component
		if component == "" {
			component = "-"
		}
		layer := d.LayerID
		if layer == "" {
			layer = "-"
		}
		rows = append(rows, []string{d.Severity.String(), d.Code, component, layer, d.Message})
	}
	r.Table([]string{"Severity", "Code", "Component", "Layer", "Message"}, rows)

	r.Println("")
	line := fmt.Sprintf("%d errors, %d warnings, %d info", summary.Errors, summary.Warnings, summary.Infos)
	if summary.Errors > 0 {
		r.Error(line)
		return
	}
	r.Warning(line)
}
