package dependency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var flattenTests = [...]struct {
	edges   []string
	ordered []string
}{
	{
		edges: []string{
			"Order -> Address",
			"Order -> Item",
			"Item -> Price",
			"Invoice -> Order",
		},
		ordered: []string{
			"Address",
			"Price",
			"Item",
			"Order",
			"Invoice",
		},
	},
	{
		// Order shouldn't matter
		edges: []string{
			"Invoice -> Order",
			"Item -> Price",
			"Order -> Item",
			"Order -> Address",
		},
		ordered: []string{
			"Address",
			"Price",
			"Item",
			"Order",
			"Invoice",
		},
	},
	{
		// Loops are not followed
		edges: []string{
			"Mildred -> Yancy",
			"Mrs -> Junior",
			"Mrs -> Phillip",
			"Phillip -> Yancy",
			"Yancy -> Junior",
			"Yancy -> Phillip",
		},
		ordered: []string{
			"Junior",
			"Phillip",
			"Yancy",
			"Mildred",
			"Mrs",
		},
	},
}

func buildGraph(edges []string) *Graph {
	var graph Graph
	for _, edge := range edges {
		var target, dep string
		if _, err := fmt.Sscanf(edge, "%s -> %s", &target, &dep); err != nil {
			panic("bad test edge " + edge)
		}
		graph.Add(target, dep)
	}
	return &graph
}

func TestFlatten(t *testing.T) {
	for _, tt := range flattenTests {
		graph := buildGraph(tt.edges)
		var got []string
		graph.Flatten(func(vertex string) {
			got = append(got, vertex)
		})
		require.Equal(t, tt.ordered, got)
	}
}

func TestFlattenFromRoots(t *testing.T) {
	graph := buildGraph(flattenTests[0].edges)
	var got []string
	graph.Flatten(func(vertex string) {
		got = append(got, vertex)
	}, "Item", "Address")
	require.Equal(t, []string{"Price", "Item", "Address"}, got)

	got = nil
	graph.Flatten(func(vertex string) {
		got = append(got, vertex)
	}, "Unknown")
	require.Equal(t, []string{"Unknown"}, got)
}

func TestBackEdges(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		graph := buildGraph(flattenTests[0].edges)
		require.Empty(t, graph.BackEdges())
	})
	t.Run("self loop", func(t *testing.T) {
		graph := buildGraph([]string{"Node -> Node"})
		require.Equal(t, []Edge{{"Node", "Node"}}, graph.BackEdges())
	})
	t.Run("mutual", func(t *testing.T) {
		graph := buildGraph([]string{"A -> B", "B -> A"})
		require.Equal(t, []Edge{{"B", "A"}}, graph.BackEdges())
	})
	t.Run("three hops", func(t *testing.T) {
		graph := buildGraph([]string{"A -> B", "B -> C", "C -> A", "C -> D"})
		require.Equal(t, []Edge{{"C", "A"}}, graph.BackEdges())
	})
	t.Run("cycle reached through another root", func(t *testing.T) {
		graph := buildGraph(flattenTests[2].edges)
		require.Equal(t, []Edge{{"Phillip", "Yancy"}}, graph.BackEdges())
	})
}
