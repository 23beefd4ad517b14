package formatters

import "encoding/json"

// JSONFormatter formats graphs as JSON.
type JSONFormatter struct{}

// Format converts the adjacency list to indented JSON. Map keys marshal in
// sorted order, so the output is deterministic.
func (f *JSONFormatter) Format(adjacency map[string][]string, opts FormatOptions) (string, error) {
	// Render empty adjacency as [] rather than null for stable consumers.
	normalized := make(map[string][]string, len(adjacency))
	for node, targets := range adjacency {
		if targets == nil {
			targets = []string{}
		}
		normalized[node] = targets
	}

	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
