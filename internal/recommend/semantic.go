// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package recommend

import (
	"sort"

	"github.com/readmill/bookgraph/internal/graph"
)

// NotConnected is the distance returned when no path exists between two
// nodes within the search depth bound.
const NotConnected = -1

// PathFinder computes hop distances over the genre graph: the
// undirected graph whose edges are genre membership (book -> genre) and
// genre subclass (genre -> supergenre) assertions.
type PathFinder struct {
	maxDepth int
}

// NewPathFinder returns a PathFinder bounded at maxDepth hops.
// Non-positive maxDepth falls back to DefaultMaxDepth.
func NewPathFinder(maxDepth int) *PathFinder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathFinder{maxDepth: maxDepth}
}

// buildGenreAdjacency materializes the undirected adjacency of the
// genre graph. Both edge kinds are traversed in both directions, so a
// path may descend from a genre back into its other members. Literal
// objects never form edges.
func buildGenreAdjacency(g *graph.Store) map[string][]string {
	adj := make(map[string][]string)
	addEdge := func(s string, o graph.Term) {
		if o.Kind != graph.KindIRI {
			return
		}
		adj[s] = append(adj[s], o.Value)
		adj[o.Value] = append(adj[o.Value], s)
	}
	g.ForEachTriple(graph.HasGenre, addEdge)
	g.ForEachTriple(graph.RDFSSubClassOf, addEdge)
	// Neighbor order must not depend on map iteration elsewhere; sort
	// each list so BFS expansion is reproducible.
	for node := range adj {
		sort.Strings(adj[node])
	}
	return adj
}

// DistanceAndPath runs a breadth-first search from source to target and
// returns the hop distance and the node path from source to target
// inclusive. When source equals target the distance is 0 and the path
// is the single node. When no path exists within the depth bound it
// returns NotConnected and a nil path.
func (p *PathFinder) DistanceAndPath(g *graph.Store, source, target string) (int, []string) {
	if source == target {
		return 0, []string{source}
	}
	adj := buildGenreAdjacency(g)
	return p.searchAdjacency(adj, source, target)
}

// searchAdjacency is the BFS core over a prebuilt adjacency, shared by
// DistanceAndPath and the batch scorer which reuses one adjacency for
// all candidates.
func (p *PathFinder) searchAdjacency(adj map[string][]string, source, target string) (int, []string) {
	if source == target {
		return 0, []string{source}
	}
	type entry struct {
		node string
		path []string
	}
	visited := map[string]bool{source: true}
	queue := []entry{{node: source, path: []string{source}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.path)-1 >= p.maxDepth {
			continue
		}
		for _, next := range adj[cur.node] {
			if visited[next] {
				continue
			}
			visited[next] = true
			path := make([]string, len(cur.path), len(cur.path)+1)
			copy(path, cur.path)
			path = append(path, next)
			if next == target {
				return len(path) - 1, path
			}
			queue = append(queue, entry{node: next, path: path})
		}
	}
	return NotConnected, nil
}
