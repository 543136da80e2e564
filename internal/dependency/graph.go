// Package dependency builds and flattens dependency graphs.
package dependency // import "github.com/CognitoIQ/go-xsdbind/internal/dependency"

import (
	"sort"
	"sync"
)

// insertUnique inserts x into set, preserving order. If x is already in
// set, it is not added. The augmented set is returned.
func insertUnique(set []string, x string) []string {
	i := sort.SearchStrings(set, x)
	if i >= len(set) || set[i] != x {
		set = append(set, "")
		copy(set[i+1:], set[i:])
		set[i] = x
	}
	return set
}

// An Edge is a dependency of Target on Dependency.
type Edge struct {
	Target, Dependency string
}

// A Graph is a collection of targets and their dependencies.
type Graph struct {
	once    sync.Once
	targets []string
	nodes   map[string][]string
}

func (g *Graph) init() {
	g.once.Do(func() { g.nodes = make(map[string][]string) })
}

// Add adds a dependency to a Graph.
func (g *Graph) Add(target, dependency string) {
	g.init()
	g.targets = insertUnique(g.targets, target)
	g.nodes[target] = insertUnique(g.nodes[target], dependency)
}

// Flatten calls the walk function on each node reachable from roots in
// topological order, starting with the leaves and traversing up to the
// roots. With no roots, every target in the Graph is a root. The same
// Graph will always be traversed in the same order.
//
// Every vertex is visited once; any cycles in the graph are skipped.
func (g *Graph) Flatten(walk func(string), roots ...string) {
	g.init()
	if len(roots) == 0 {
		roots = g.targets
	}
	g.flatten(walk, roots, make(map[string]bool, len(g.nodes)))
}

func (g *Graph) flatten(fn func(string), targets []string, visited map[string]bool) {
	for _, tgt := range targets {
		if !visited[tgt] {
			visited[tgt] = true
			g.flatten(fn, g.nodes[tgt], visited)
			fn(tgt)
		}
	}
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	done
)

// BackEdges returns the edges that close a cycle when the graph is
// walked depth-first from its targets in sorted order. Removing every
// returned edge leaves the graph acyclic. Self-loops are included. The
// result is deterministic for a given set of edges.
func (g *Graph) BackEdges() []Edge {
	g.init()
	var result []Edge
	states := make(map[string]visitState, len(g.nodes))

	var visit func(string)
	visit = func(node string) {
		states[node] = visiting
		for _, dep := range g.nodes[node] {
			switch states[dep] {
			case visiting:
				result = append(result, Edge{node, dep})
			case unvisited:
				visit(dep)
			}
		}
		states[node] = done
	}
	for _, tgt := range g.targets {
		if states[tgt] == unvisited {
			visit(tgt)
		}
	}
	return result
}
