// Package graph serves the component embedding graph.
package graph

import (
	"net/http"

	"github.com/leapstack-labs/leapui/internal/engine"
	"github.com/leapstack-labs/leapui/internal/ui/features/common"
)

// Node is a component in the graph.
type Node struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Edge points from an embedder to the component it embeds.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Data is the graph response.
type Data struct {
	Nodes []Node   `json:"nodes"`
	Edges []Edge   `json:"edges"`
	Cycle []string `json:"cycle,omitempty"`
}

// Handlers provides HTTP handlers for the graph feature.
type Handlers struct {
	engine *engine.Engine
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{engine: eng}
}

// Graph returns every component and embed edge. Levels are -1 when the
// graph has a cycle.
func (h *Handlers) Graph(w http.ResponseWriter, _ *http.Request) {
	c, err := h.engine.Compiler()
	if err != nil {
		common.WriteError(w, err)
		return
	}
	g := c.Graph()
	doc := c.Document()

	level := make(map[string]int)
	if levels, err := g.GetExecutionLevels(); err == nil {
		for i, ids := range levels {
			for _, id := range ids {
				level[id] = i
			}
		}
	}

	data := Data{Nodes: []Node{}, Edges: []Edge{}}
	if cyclic, path := g.HasCycle(); cyclic {
		data.Cycle = path
	}
	for _, comp := range doc.Components.All() {
		lvl, ok := level[comp.ID]
		if !ok {
			lvl = -1
		}
		data.Nodes = append(data.Nodes, Node{ID: comp.ID, Name: comp.Name, Level: lvl})
		for _, dep := range g.Dependencies(comp.ID) {
			data.Edges = append(data.Edges, Edge{From: comp.ID, To: dep})
		}
	}
	common.WriteJSON(w, http.StatusOK, data)
}
