package formatters

import "fmt"

// FormatOptions contains optional parameters for formatting graphs.
type FormatOptions struct {
	// Label is an optional title for the rendered graph.
	Label string
}

// Formatter renders an adjacency list of dotted names into one output format.
type Formatter interface {
	Format(adjacency map[string][]string, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
// Supported formats: "dot", "json", "mermaid"
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "dot":
		return &DOTFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "mermaid":
		return &MermaidFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: dot, json, mermaid)", format)
	}
}
