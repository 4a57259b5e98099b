package catalog

import (
	"slices"

	"github.com/samber/lo"
)

// Graph is an adjacency list keyed by course identifier
type Graph map[string][]string

// Graphs holds both directions of the prerequisite relation
type Graphs struct {
	Backward Graph // course -> its direct prerequisites
	Forward  Graph // course -> courses that list it as a direct prerequisite
}

func BuildGraphs(catalog *Catalog) Graphs {
	return Graphs{
		Backward: BuildBackwardGraph(catalog),
		Forward:  BuildForwardGraph(catalog),
	}
}

func BuildBackwardGraph(catalog *Catalog) Graph {
	graph := make(Graph, catalog.Len())
	for _, id := range catalog.order {
		graph[id] = slices.Clone(catalog.courses[id].Prerequisites)
	}
	return graph
}

// BuildForwardGraph inverts the prerequisite relation. Every catalog course gets an entry, and so does every prerequisite even when it has no record of its own
func BuildForwardGraph(catalog *Catalog) Graph {
	graph := make(Graph, catalog.Len())
	for _, id := range catalog.order {
		if _, ok := graph[id]; !ok {
			graph[id] = []string{}
		}
		for _, prerequisite := range catalog.courses[id].Prerequisites {
			graph[prerequisite] = append(graph[prerequisite], id)
		}
	}
	return graph
}

// Consistent checks that every backward edge (p, c) has the matching forward edge and vice versa
func (graphs Graphs) Consistent() bool {
	for course, prerequisites := range graphs.Backward {
		if lo.SomeBy(prerequisites, func(prerequisite string) bool {
			return !slices.Contains(graphs.Forward[prerequisite], course)
		}) {
			return false
		}
	}
	for prerequisite, dependents := range graphs.Forward {
		if lo.SomeBy(dependents, func(dependent string) bool {
			return !slices.Contains(graphs.Backward[dependent], prerequisite)
		}) {
			return false
		}
	}
	return true
}
