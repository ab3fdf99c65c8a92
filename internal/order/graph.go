package order

import (
	"sort"

	"aagreorder/internal/aag"
	"aagreorder/internal/circuit"
	"aagreorder/internal/support"
)

// Graph is the input-association graph of spec.md §3/§4.4: an
// undirected graph on [0, I) with an edge between two inputs whenever
// some AND gate's support set contains both.
type Graph struct {
	N   int
	adj []map[int]struct{}
}

// newGraph allocates an empty graph on n vertices (isolated vertices
// included, matching the Python source's add_nodes_from(range(I))).
func newGraph(n int) *Graph {
	g := &Graph{N: n, adj: make([]map[int]struct{}, n)}
	for i := range g.adj {
		g.adj[i] = make(map[int]struct{})
	}
	return g
}

func (g *Graph) addEdge(u, v int) {
	if u == v {
		return
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
}

// Degree returns the static degree of vertex v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Neighbors returns v's neighbors, sorted ascending by input index.
func (g *Graph) Neighbors(v int) []int {
	out := make([]int, 0, len(g.adj[v]))
	for n := range g.adj[v] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// BuildGraph constructs the input-association graph by inducing a
// clique, per AND gate, over the support set of that gate's own
// output literal (§4.4: "the support of the gate's output induces a
// clique in G").
func BuildGraph(rec *aag.Record, idx *circuit.Index, an *support.Analyzer) *Graph {
	g := newGraph(rec.I)
	for _, outLit := range idx.AndOrder {
		members := an.Support(outLit)
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				g.addEdge(members[i], members[j])
			}
		}
	}
	return g
}

// RCM computes the Reverse Cuthill–McKee ordering of §4.4: components
// are processed in ascending order of the minimum-degree unvisited
// vertex (ties broken by input index); within a component, BFS from
// that seed visits unvisited neighbors in ascending static-degree
// order (ties broken by index); each component's visit order is
// reversed, and components are concatenated in processing order. A
// malformed result (length != I) falls back to identity.
func RCM(g *Graph) Permutation {
	if g.N == 0 {
		return Permutation{}
	}

	seeds := make([]int, g.N)
	for i := range seeds {
		seeds[i] = i
	}
	sort.Slice(seeds, func(i, j int) bool {
		di, dj := g.Degree(seeds[i]), g.Degree(seeds[j])
		if di != dj {
			return di < dj
		}
		return seeds[i] < seeds[j]
	})

	visited := make([]bool, g.N)
	order := make([]int, 0, g.N)

	for _, start := range seeds {
		if visited[start] {
			continue
		}

		queue := []int{start}
		visited[start] = true
		component := []int{start}

		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]

			neighbors := g.Neighbors(u)
			sort.SliceStable(neighbors, func(i, j int) bool {
				return g.Degree(neighbors[i]) < g.Degree(neighbors[j])
			})
			for _, v := range neighbors {
				if visited[v] {
					continue
				}
				visited[v] = true
				queue = append(queue, v)
				component = append(component, v)
			}
		}

		for i := len(component) - 1; i >= 0; i-- {
			order = append(order, component[i])
		}
	}

	if len(order) != g.N {
		return identity(g.N)
	}
	return Permutation(order)
}
