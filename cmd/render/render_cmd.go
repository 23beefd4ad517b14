package render

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/codegraph/cmd/render/formatters"
	"github.com/LegacyCodeHQ/codegraph/depgraph"
)

var outputFormat string
var label string
var renderCalls bool

// RenderCmd represents the render command
var RenderCmd = &cobra.Command{
	Use:   "render <events.jsonl>",
	Short: "Render a recorded event stream as a graph",
	Long: `Folds a recorded event stream into a deduplicated graph and renders it.
Invalidation records in the stream discard the stale generation of a module's
facts, so rechecked modules appear exactly once.

By default the module import graph is rendered; --calls renders the function
call graph instead. Pass '-' to read the stream from standard input.

Output formats:
  - dot: Graphviz DOT format for visualization (default)
  - mermaid: Mermaid.js flowchart
  - json: adjacency list as JSON

Example usage:
  codegraph render events.jsonl
  codegraph render events.jsonl --format=mermaid --label="my project"
  codegraph render events.jsonl --calls
  codegraph scan ./myproject | codegraph render -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("format") {
			if configured := viper.GetString("format"); configured != "" {
				outputFormat = configured
			}
		}

		graph, err := foldStream(args[0])
		if err != nil {
			return err
		}

		adjacency := graph.ImportAdjacency()
		if renderCalls {
			adjacency = graph.CallAdjacency()
		}

		formatter, err := formatters.NewFormatter(outputFormat)
		if err != nil {
			return err
		}

		output, err := formatter.Format(adjacency, formatters.FormatOptions{Label: label})
		if err != nil {
			return fmt.Errorf("failed to format graph: %w", err)
		}

		fmt.Println(output)
		return nil
	},
}

// foldStream reads and folds an event stream from a file, or from standard
// input when path is "-".
func foldStream(path string) (*depgraph.CodeGraph, error) {
	if path == "-" {
		records, err := depgraph.ReadRecords(os.Stdin)
		if err != nil {
			return nil, err
		}
		return depgraph.Fold(records), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event stream: %w", err)
	}
	defer f.Close()

	records, err := depgraph.ReadRecords(f)
	if err != nil {
		return nil, err
	}
	return depgraph.Fold(records), nil
}

func init() {
	RenderCmd.Flags().StringVarP(&outputFormat, "format", "f", "dot",
		"output format: dot, json, or mermaid")
	RenderCmd.Flags().StringVar(&label, "label", "", "optional title for the rendered graph")
	RenderCmd.Flags().BoolVar(&renderCalls, "calls", false,
		"render the function call graph instead of the module import graph")
}
