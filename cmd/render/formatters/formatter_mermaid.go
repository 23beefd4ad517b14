package formatters

import (
	"fmt"
	"strings"
)

// MermaidFormatter formats graphs as Mermaid.js flowcharts.
type MermaidFormatter struct{}

// Format converts the adjacency list to Mermaid.js flowchart format.
func (f *MermaidFormatter) Format(adjacency map[string][]string, opts FormatOptions) (string, error) {
	var sb strings.Builder

	if opts.Label != "" {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", opts.Label))
		sb.WriteString("---\n")
	}
	sb.WriteString("flowchart LR\n")

	nodes := sortedNodes(adjacency)

	// Mermaid node IDs can't contain dots, so dotted names become labels
	// on synthetic n<i> IDs.
	ids := make(map[string]string, len(nodes))
	for i, node := range nodes {
		ids[node] = fmt.Sprintf("n%d", i)
	}

	for _, node := range nodes {
		sb.WriteString(fmt.Sprintf("    %s[%q]\n", ids[node], node))
	}
	for _, node := range nodes {
		for _, target := range adjacency[node] {
			if _, ok := ids[target]; !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[node], ids[target]))
		}
	}

	return sb.String(), nil
}
