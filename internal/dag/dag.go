// Package dag provides the component embedding graph.
// An edge runs from an embedded component to the component that embeds it,
// so a topological order lists dependencies before their embedders.
// It supports cycle detection, topological sorting and change propagation.
package dag

import (
	"fmt"
	"slices"
	"sort"
)

// Node represents a node in the graph.
type Node struct {
	// ID is the unique identifier (component ID)
	ID string
	// Data holds arbitrary node data
	Data any
}

// Graph is a directed graph over component IDs.
// Self-loops and cycles can be added; HasCycle reports them.
type Graph struct {
	nodes    map[string]*Node
	order    []string            // insertion order, for deterministic traversal
	embeds   map[string][]string // embedder -> embedded components (dependencies)
	embedded map[string][]string // embedded component -> embedders (dependents)
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		embeds:   make(map[string][]string),
		embedded: make(map[string][]string),
	}
}

// AddNode adds a node to the graph, updating its data if it already exists.
func (g *Graph) AddNode(id string, data any) {
	if n, exists := g.nodes[id]; exists {
		n.Data = data
		return
	}
	g.nodes[id] = &Node{ID: id, Data: data}
	g.order = append(g.order, id)
}

// AddEmbed records that embedder's layout contains a component layer
// referencing embedded. Both nodes must exist.
func (g *Graph) AddEmbed(embedder, embedded string) error {
	if _, exists := g.nodes[embedder]; !exists {
		return fmt.Errorf("embedding node %q does not exist", embedder)
	}
	if _, exists := g.nodes[embedded]; !exists {
		return fmt.Errorf("embedded node %q does not exist", embedded)
	}

	if !slices.Contains(g.embeds[embedder], embedded) {
		g.embeds[embedder] = append(g.embeds[embedder], embedded)
	}
	if !slices.Contains(g.embedded[embedded], embedder) {
		g.embedded[embedded] = append(g.embedded[embedded], embedder)
	}
	return nil
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// Dependencies returns the components directly embedded by id.
func (g *Graph) Dependencies(id string) []string {
	return g.embeds[id]
}

// Dependents returns the components that directly embed id.
func (g *Graph) Dependents(id string) []string {
	return g.embedded[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of embed edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, deps := range g.embeds {
		count += len(deps)
	}
	return count
}

// HasCycle reports whether any component embeds itself, directly or
// transitively, along with the cycle path (first element repeated at the end).
// Nodes are explored in insertion order so the reported path is stable.
func (g *Graph) HasCycle() (bool, []string) {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string
	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		state[id] = onStack
		stack = append(stack, id)

		for _, dep := range g.embeds[id] {
			switch state[dep] {
			case unvisited:
				if dfs(dep) {
					return true
				}
			case onStack:
				start := slices.Index(stack, dep)
				cyclePath = append(slices.Clone(stack[start:]), dep)
				return true
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	for _, id := range g.order {
		if state[id] == unvisited && dfs(id) {
			return true, cyclePath
		}
	}
	return false, nil
}

// TopologicalSort returns nodes with embedded components before their embedders.
// Ties are broken by insertion order. Returns an error if the graph has a cycle.
func (g *Graph) TopologicalSort() ([]*Node, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	visited := make(map[string]bool, len(g.nodes))
	result := make([]*Node, 0, len(g.nodes))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, dep := range g.embeds[id] {
			visit(dep)
		}
		result = append(result, g.nodes[id])
	}

	for _, id := range g.order {
		visit(id)
	}
	return result, nil
}

// GetExecutionLevels groups nodes by embedding depth.
// Level 0 holds components that embed nothing; a component at level N only
// embeds components from levels below N. Each level is sorted by ID.
func (g *Graph) GetExecutionLevels() ([][]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	assigned := make(map[string]int, len(g.nodes))

	var getLevel func(id string) int
	getLevel = func(id string) int {
		if level, ok := assigned[id]; ok {
			return level
		}
		level := 0
		for _, dep := range g.embeds[id] {
			if l := getLevel(dep) + 1; l > level {
				level = l
			}
		}
		assigned[id] = level
		return level
	}

	maxLevel := -1
	for _, id := range g.order {
		if level := getLevel(id); level > maxLevel {
			maxLevel = level
		}
	}

	levels := make([][]string, maxLevel+1)
	for id, level := range assigned {
		levels[level] = append(levels[level], id)
	}
	for i := range levels {
		sort.Strings(levels[i])
	}
	return levels, nil
}

// GetAffectedNodes returns the changed components plus every component that
// embeds one of them, transitively. Unknown IDs are ignored.
func (g *Graph) GetAffectedNodes(changedIDs []string) []string {
	affected := make(map[string]bool)

	var mark func(id string)
	mark = func(id string) {
		if affected[id] {
			return
		}
		affected[id] = true
		for _, embedder := range g.embedded[id] {
			mark(embedder)
		}
	}

	for _, id := range changedIDs {
		if _, exists := g.nodes[id]; exists {
			mark(id)
		}
	}

	result := make([]string, 0, len(affected))
	for id := range affected {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// GetUpstreamNodes returns every component id embeds, transitively.
func (g *Graph) GetUpstreamNodes(id string) []string {
	upstream := make(map[string]bool)

	var mark func(nodeID string)
	mark = func(nodeID string) {
		for _, dep := range g.embeds[nodeID] {
			if !upstream[dep] {
				upstream[dep] = true
				mark(dep)
			}
		}
	}
	mark(id)

	result := make([]string, 0, len(upstream))
	for nodeID := range upstream {
		result = append(result, nodeID)
	}
	sort.Strings(result)
	return result
}

// GetRoots returns components that embed nothing.
func (g *Graph) GetRoots() []string {
	var roots []string
	for id := range g.nodes {
		if len(g.embeds[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// GetLeaves returns components that no other component embeds.
func (g *Graph) GetLeaves() []string {
	var leaves []string
	for id := range g.nodes {
		if len(g.embedded[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	sort.Strings(leaves)
	return leaves
}
