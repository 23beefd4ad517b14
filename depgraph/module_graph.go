package depgraph

import (
	"errors"
	"fmt"
	"sort"

	graphlib "github.com/dominikbraun/graph"
)

// ModuleGraph builds a directed module graph from the folded import edges.
// Vertices are module FQNs; importees that were never seen as modules (for
// example, imports that resolved to files outside the filter roots in an
// unfiltered stream) still get vertices so paths through them are visible.
func ModuleGraph(g *CodeGraph) (graphlib.Graph[string, string], error) {
	mg := graphlib.New(graphlib.StringHash, graphlib.Directed())

	adjacency := g.ImportAdjacency()

	vertices := make([]string, 0, len(adjacency))
	for module := range adjacency {
		vertices = append(vertices, module)
	}
	sort.Strings(vertices)

	for _, module := range vertices {
		if err := mg.AddVertex(module); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add module %s: %w", module, err)
		}
	}

	for _, importer := range vertices {
		for _, importee := range adjacency[importer] {
			err := mg.AddEdge(importer, importee)
			if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add import edge %s -> %s: %w", importer, importee, err)
			}
		}
	}

	return mg, nil
}

// DependencyPath returns the modules on a shortest import path from one
// module to another, endpoints included.
func DependencyPath(g *CodeGraph, from, to string) ([]string, error) {
	mg, err := ModuleGraph(g)
	if err != nil {
		return nil, err
	}

	path, err := graphlib.ShortestPath(mg, from, to)
	if err != nil {
		if errors.Is(err, graphlib.ErrTargetNotReachable) {
			return nil, fmt.Errorf("%s does not depend on %s", from, to)
		}
		return nil, fmt.Errorf("failed to find path from %s to %s: %w", from, to, err)
	}

	return path, nil
}
