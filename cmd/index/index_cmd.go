package index

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LegacyCodeHQ/codegraph/depgraph"
	"github.com/LegacyCodeHQ/codegraph/store"
)

var dbPath string

// IndexCmd represents the index command
var IndexCmd = &cobra.Command{
	Use:   "index <events.jsonl>",
	Short: "Index a recorded event stream into a SQLite database",
	Long: `Folds a recorded event stream into a SQLite database with one table per
edge kind (modules, imports, class_defs, class_refs, function_defs, calls),
keyed on logical edge identity so re-indexing and recheck re-emission stay
deduplicated.

Example usage:
  codegraph index events.jsonl
  codegraph index events.jsonl -o graph.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open event stream: %w", err)
		}
		defer f.Close()

		records, err := depgraph.ReadRecords(f)
		if err != nil {
			return err
		}

		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Index(db, records); err != nil {
			return err
		}

		fmt.Printf("indexed %d records into %s\n", len(records), dbPath)
		return nil
	},
}

func init() {
	IndexCmd.Flags().StringVarP(&dbPath, "output", "o", "codegraph.db",
		"path of the SQLite database to write")
}
