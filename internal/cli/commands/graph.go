package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapui/internal/cli/output"
	"github.com/leapstack-labs/leapui/pkg/core"
	"github.com/spf13/cobra"
)

// GraphQuerier provides read-only access to the embedding graph.
type GraphQuerier interface {
	Dependencies(string) []string
	Dependents(string) []string
	NodeCount() int
	EdgeCount() int
	GetRoots() []string
	GetLeaves() []string
}

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "graph",
		Aliases: []string{"dag"},
		Short:   "Show the component embedding graph",
		Long: `Display which components embed which.

Components are grouped by build level. Every component in a level only
embeds components from earlier levels, so a level builds in parallel.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Show the graph
  leapui graph

  # Output as JSON
  leapui graph --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd)
		},
	}

	return cmd
}

func runGraph(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := cmdCtx.Engine.Compiler()
	if err != nil {
		return err
	}
	g := c.Graph()
	doc := c.Document()

	levels, err := g.GetExecutionLevels()
	if err != nil {
		if cyclic, path := g.HasCycle(); cyclic {
			return &core.StructuralCycleError{Path: path}
		}
		return fmt.Errorf("failed to get build levels: %w", err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(graphOutput(doc, g, levels))
	case output.ModeMarkdown:
		graphMarkdown(r, doc, g, levels)
	default:
		graphText(r, doc, g, levels)
	}
	return nil
}

// graphText outputs the graph in styled text format.
func graphText(r *output.Renderer, doc *core.Document, g GraphQuerier, levels [][]string) {
	styles := r.Styles()

	r.Header(1, "Embedding Graph")

	for i, level := range levels {
		r.Println(styles.Header2.Render(fmt.Sprintf("Level %d:", i)))
		for _, id := range level {
			r.Printf("  %s %s\n", styles.ModelPath.Render(componentName(doc, id)), styles.Muted.Render("("+id+")"))
			if embeds := componentNames(doc, g.Dependencies(id)); len(embeds) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("embeds:"), strings.Join(embeds, ", "))
			}
			if users := componentNames(doc, g.Dependents(id)); len(users) > 0 {
				r.Printf("    %s %s\n", styles.Muted.Render("embedded by:"), strings.Join(users, ", "))
			}
		}
		r.Println("")
	}

	r.Muted(fmt.Sprintf("Total: %d components, %d embeds", g.NodeCount(), g.EdgeCount()))
}

// graphMarkdown outputs the graph in markdown format.
func graphMarkdown(r *output.Renderer, doc *core.Document, g GraphQuerier, levels [][]string) {
	r.Println(output.FormatHeader(1, "Embedding Graph"))
	r.Println("")

	for i, level := range levels {
		levelName := fmt.Sprintf("Level %d", i)
		if i == 0 {
			levelName = "Level 0 (Leaves)"
		}
		r.Println(output.FormatHeader(2, levelName))

		for _, id := range level {
			r.Printf("- %s\n", componentName(doc, id))
			if embeds := componentNames(doc, g.Dependencies(id)); len(embeds) > 0 {
				r.Printf("  - embeds: %s\n", strings.Join(embeds, ", "))
			}
			if users := componentNames(doc, g.Dependents(id)); len(users) > 0 {
				r.Printf("  - embedded by: %s\n", strings.Join(users, ", "))
			}
		}
		r.Println("")
	}

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Total Components", fmt.Sprintf("%d", g.NodeCount())))
	r.Println(output.FormatKeyValue("Total Embeds", fmt.Sprintf("%d", g.EdgeCount())))
}

func graphOutput(doc *core.Document, g GraphQuerier, levels [][]string) output.GraphOutput {
	out := output.GraphOutput{
		Levels:          make([]output.GraphLevel, 0, len(levels)),
		TotalComponents: g.NodeCount(),
		TotalEdges:      g.EdgeCount(),
		Pages:           componentNames(doc, g.GetLeaves()),
		Leaves:          componentNames(doc, g.GetRoots()),
	}
	for i, level := range levels {
		gl := output.GraphLevel{
			Level:      i,
			Components: make([]output.GraphNode, 0, len(level)),
		}
		for _, id := range level {
			gl.Components = append(gl.Components, output.GraphNode{
				ID:         id,
				Name:       componentName(doc, id),
				Embeds:     componentNames(doc, g.Dependencies(id)),
				EmbeddedBy: componentNames(doc, g.Dependents(id)),
			})
		}
		out.Levels = append(out.Levels, gl)
	}
	return out
}

func componentName(doc *core.Document, id string) string {
	return componentNames(doc, []string{id})[0]
}
