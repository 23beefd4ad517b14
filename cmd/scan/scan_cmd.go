package scan

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/codegraph/pyscan"
	"github.com/LegacyCodeHQ/codegraph/recorder"
)

var output string
var filterRoots []string
var recordAll bool

// ScanCmd represents the scan command
var ScanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Record the code graph of a Python source tree",
	Long: `Walks a Python source tree and records its code-relationship events
(modules, imports, class and function definitions, inheritance, instantiations
and calls) as a JSON Lines stream.

By default only files under the scanned directory are recorded; --filter
narrows or widens that to explicit roots, and --all disables filtering
entirely.

Example usage:
  codegraph scan ./myproject
  codegraph scan ./myproject -o events.jsonl
  codegraph scan ./monorepo --filter ./monorepo/services --filter ./monorepo/lib
  codegraph scan ./myproject --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		if !cmd.Flags().Changed("output") {
			if configured := viper.GetString("output"); configured != "" {
				output = configured
			}
		}
		if !cmd.Flags().Changed("filter") {
			if configured := viper.GetStringSlice("filter"); len(configured) > 0 {
				filterRoots = configured
			}
		}

		roots := filterRoots
		if len(roots) == 0 {
			roots = []string{root}
		}
		if recordAll {
			roots = nil
		}

		rec, err := recorder.New(recorder.Options{
			Output:      output,
			FilterRoots: roots,
		})
		if err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
		defer rec.Close()

		return pyscan.Scan(root, rec)
	},
}

func init() {
	ScanCmd.Flags().StringVarP(&output, "output", "o", recorder.Stdout,
		"destination for the event stream (a file path, or 'stdout')")
	ScanCmd.Flags().StringSliceVar(&filterRoots, "filter", nil,
		"only record files under these roots (default: the scanned directory)")
	ScanCmd.Flags().BoolVar(&recordAll, "all", false,
		"record everything, ignoring filter roots")
}
