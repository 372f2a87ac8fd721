package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeIDs(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestGraph_AddNodeAndEmbed(t *testing.T) {
	g := NewGraph()
	g.AddNode("page", "Page")
	g.AddNode("card", "Card")
	g.AddNode("button", "Button")

	require.NoError(t, g.AddEmbed("page", "card"))
	require.NoError(t, g.AddEmbed("card", "button"))
	require.NoError(t, g.AddEmbed("card", "button"), "duplicate edges are ignored")

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []string{"button"}, g.Dependencies("card"))
	assert.Equal(t, []string{"page"}, g.Dependents("card"))
}

func TestGraph_AddNode_UpdatesData(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", 1)
	g.AddNode("a", 2)

	n, ok := g.GetNode("a")
	require.True(t, ok)
	assert.Equal(t, 2, n.Data)
	assert.Equal(t, 1, g.NodeCount())
}

func TestGraph_AddEmbed_InvalidNodes(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", nil)

	assert.Error(t, g.AddEmbed("a", "nonexistent"))
	assert.Error(t, g.AddEmbed("nonexistent", "a"))
}

func TestGraph_HasCycle(t *testing.T) {
	tests := []struct {
		name      string
		edges     [][2]string
		wantCycle bool
		wantPath  []string
	}{
		{
			name:  "chain",
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
		},
		{
			name:  "diamond",
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
		},
		{
			name:      "self embed",
			edges:     [][2]string{{"a", "a"}},
			wantCycle: true,
			wantPath:  []string{"a", "a"},
		},
		{
			name:      "transitive",
			edges:     [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			wantCycle: true,
			wantPath:  []string{"a", "b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			for _, id := range []string{"a", "b", "c", "d"} {
				g.AddNode(id, nil)
			}
			for _, e := range tt.edges {
				require.NoError(t, g.AddEmbed(e[0], e[1]))
			}

			hasCycle, path := g.HasCycle()
			assert.Equal(t, tt.wantCycle, hasCycle)
			if tt.wantCycle {
				assert.Equal(t, tt.wantPath, path)
			} else {
				assert.Empty(t, path)
			}
		})
	}
}

func TestGraph_TopologicalSort(t *testing.T) {
	g := NewGraph()
	g.AddNode("page", nil)
	g.AddNode("card", nil)
	g.AddNode("button", nil)
	g.AddNode("icon", nil)
	require.NoError(t, g.AddEmbed("page", "card"))
	require.NoError(t, g.AddEmbed("card", "button"))
	require.NoError(t, g.AddEmbed("button", "icon"))

	sorted, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"icon", "button", "card", "page"}, nodeIDs(sorted))
}

func TestGraph_TopologicalSort_Cycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", nil)
	g.AddNode("b", nil)
	require.NoError(t, g.AddEmbed("a", "b"))
	require.NoError(t, g.AddEmbed("b", "a"))

	_, err := g.TopologicalSort()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle detected")

	_, err = g.GetExecutionLevels()
	assert.Error(t, err)
}

func TestGraph_GetExecutionLevels(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"page", "card", "button", "badge"} {
		g.AddNode(id, nil)
	}
	require.NoError(t, g.AddEmbed("page", "card"))
	require.NoError(t, g.AddEmbed("page", "badge"))
	require.NoError(t, g.AddEmbed("card", "button"))

	levels, err := g.GetExecutionLevels()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"badge", "button"},
		{"card"},
		{"page"},
	}, levels)
}

func TestGraph_GetExecutionLevels_Empty(t *testing.T) {
	levels, err := NewGraph().GetExecutionLevels()
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestGraph_GetAffectedNodes(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"page", "card", "button", "footer"} {
		g.AddNode(id, nil)
	}
	require.NoError(t, g.AddEmbed("page", "card"))
	require.NoError(t, g.AddEmbed("card", "button"))

	assert.Equal(t, []string{"button", "card", "page"}, g.GetAffectedNodes([]string{"button"}))
	assert.Equal(t, []string{"footer"}, g.GetAffectedNodes([]string{"footer", "unknown"}))
}

func TestGraph_UpstreamRootsLeaves(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"page", "card", "button"} {
		g.AddNode(id, nil)
	}
	require.NoError(t, g.AddEmbed("page", "card"))
	require.NoError(t, g.AddEmbed("card", "button"))

	assert.Equal(t, []string{"button", "card"}, g.GetUpstreamNodes("page"))
	assert.Equal(t, []string{"button"}, g.GetRoots())
	assert.Equal(t, []string{"page"}, g.GetLeaves())
}
