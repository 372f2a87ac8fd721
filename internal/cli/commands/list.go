package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	"github.com/leapstack-labs/leapui/internal/compiler"
	"github.com/leapstack-labs/leapui/internal/layertree"
	"github.com/leapstack-labs/leapui/internal/naming"
	"github.com/leapstack-labs/leapui/pkg/core"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List components with their props and embeds",
		Long: `List every component in the design document with its props, examples,
embedded components and last build status.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all components (auto-detect output format)
  leapui list

  # List components as JSON
  leapui list --output json

  # List components as Markdown (for agents/scripts)
  leapui list --output markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := cmdCtx.Engine.Compiler()
	if err != nil {
		return err
	}
	listOutput := buildListOutput(c, cmdCtx.Engine.GetStateStore())

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(listOutput)
	case output.ModeMarkdown:
		listMarkdown(r, listOutput)
	default:
		listText(r, listOutput)
	}
	return nil
}

func buildListOutput(c *compiler.Compiler, store core.Store) output.ListOutput {
	doc := c.Document()
	g := c.Graph()

	out := output.ListOutput{
		Components: make([]output.ComponentInfo, 0, doc.Components.Len()),
		Summary: output.ListSummary{
			TotalComponents: doc.Components.Len(),
			Colors:          doc.Refs.Colors.Len(),
			Breakpoints:     doc.Refs.Breakpoints.Len(),
		},
	}

	for _, comp := range doc.Components.All() {
		info := output.ComponentInfo{
			ID:         comp.ID,
			Name:       comp.Name,
			Function:   naming.KebabToPascal(comp.Name),
			Props:      make([]output.PropInfo, 0, len(comp.Props)),
			Examples:   make([]string, 0, len(comp.Examples)),
			Embeds:     componentNames(doc, g.Dependencies(comp.ID)),
			EmbeddedBy: componentNames(doc, g.Dependents(comp.ID)),
		}
		for _, p := range comp.Props {
			info.Props = append(info.Props, output.PropInfo{Name: p.Name, Type: string(p.Type)})
		}
		for _, ex := range comp.Examples {
			info.Examples = append(info.Examples, ex.Name)
		}
		if comp.Layout != nil {
			info.Layers = layertree.Count(comp.Layout)
		}
		out.Summary.TotalProps += len(comp.Props)

		if store != nil {
			if last, err := store.GetLatestArtifact(comp.ID); err == nil && last != nil {
				info.LastBuild = lastBuildInfo(last)
			}
		}
		out.Components = append(out.Components, info)
	}
	return out
}

func lastBuildInfo(rec *core.ArtifactRecord) *output.LastBuildInfo {
	var errPtr *string
	if rec.Error != "" {
		errPtr = &rec.Error
	}
	return &output.LastBuildInfo{
		Status:      string(rec.Status),
		ContentHash: rec.ContentHash,
		DurationMS:  rec.DurationMS,
		CompletedAt: rec.CreatedAt.Format(time.RFC3339),
		Error:       errPtr,
	}
}

// componentNames maps IDs to component names, keeping unknown IDs as-is.
func componentNames(doc *core.Document, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if comp, ok := doc.Components.Get(id); ok {
			names = append(names, comp.Name)
			continue
		}
		names = append(names, id)
	}
	return names
}

func propNames(props []output.PropInfo) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	return names
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// listText outputs components as a styled table.
func listText(r *output.Renderer, out output.ListOutput) {
	r.Header(1, fmt.Sprintf("Components (%d total)", out.Summary.TotalComponents))

	rows := make([][]string, 0, len(out.Components))
	for _, c := range out.Components {
		status := "never built"
		if c.LastBuild != nil {
			status = c.LastBuild.Status
		}
		rows = append(rows, []string{c.Name, c.Function, joinOrDash(propNames(c.Props)), joinOrDash(c.Embeds), status})
	}
	r.Table([]string{"Name", "Function", "Props", "Embeds", "Last Build"}, rows)
}

// listMarkdown outputs components in markdown format.
func listMarkdown(r *output.Renderer, out output.ListOutput) {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Components (%d total)", out.Summary.TotalComponents)))
	r.Println("")

	for _, c := range out.Components {
		r.Println(output.FormatHeader(2, c.Name))
		r.Println(output.FormatKeyValue("ID", c.ID))
		r.Println(output.FormatKeyValue("Function", c.Function))
		r.Println(output.FormatKeyValue("Layers", fmt.Sprintf("%d", c.Layers)))
		if len(c.Props) > 0 {
			r.Println(output.FormatKeyValue("Props", strings.Join(propNames(c.Props), ", ")))
		}
		if len(c.Examples) > 0 {
			r.Println(output.FormatKeyValue("Examples", strings.Join(c.Examples, ", ")))
		}
		if len(c.Embeds) > 0 {
			r.Println(output.FormatKeyValue("Embeds", strings.Join(c.Embeds, ", ")))
		}
		if len(c.EmbeddedBy) > 0 {
			r.Println(output.FormatKeyValue("Embedded By", strings.Join(c.EmbeddedBy, ", ")))
		}
		if c.LastBuild != nil {
			r.Println(output.FormatKeyValue("Last Build", c.LastBuild.Status))
		}
		r.Println("")
	}
}
