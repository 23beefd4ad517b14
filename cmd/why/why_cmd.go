package why

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/codegraph/depgraph"
)

// WhyCmd represents the why command
var WhyCmd = &cobra.Command{
	Use:   "why <events.jsonl> <from> <to>",
	Short: "Explain why one module depends on another",
	Long: `Folds a recorded event stream and prints a shortest import path from one
module to another, showing how the dependency arises.

Example usage:
  codegraph why events.jsonl app.main app.models
  codegraph why events.jsonl services.api lib.db`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		streamPath, from, to := args[0], args[1], args[2]

		f, err := os.Open(streamPath)
		if err != nil {
			return fmt.Errorf("failed to open event stream: %w", err)
		}
		defer f.Close()

		records, err := depgraph.ReadRecords(f)
		if err != nil {
			return err
		}
		graph := depgraph.Fold(records)

		path, err := depgraph.DependencyPath(graph, from, to)
		if err != nil {
			return err
		}

		fmt.Println(strings.Join(path, " -> "))
		return nil
	},
}
