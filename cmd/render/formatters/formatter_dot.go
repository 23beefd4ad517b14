package formatters

import (
	"fmt"
	"sort"
	"strings"
)

// DOTFormatter formats graphs as Graphviz DOT.
type DOTFormatter struct{}

// Format converts the adjacency list to Graphviz DOT format.
func (f *DOTFormatter) Format(adjacency map[string][]string, opts FormatOptions) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph codegraph {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	if opts.Label != "" {
		sb.WriteString(fmt.Sprintf("  label=%q;\n", opts.Label))
		sb.WriteString("  labelloc=t;\n")
	}
	sb.WriteString("\n")

	nodes := sortedNodes(adjacency)

	for _, node := range nodes {
		targets := append([]string(nil), adjacency[node]...)
		sort.Strings(targets)

		if len(targets) == 0 {
			sb.WriteString(fmt.Sprintf("  %q;\n", node))
			continue
		}
		for _, target := range targets {
			sb.WriteString(fmt.Sprintf("  %q -> %q;\n", node, target))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

func sortedNodes(adjacency map[string][]string) []string {
	nodes := make([]string, 0, len(adjacency))
	for node := range adjacency {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}
