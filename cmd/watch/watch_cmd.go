package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

type watchOptions struct {
	output      string
	filterRoots []string
}

// WatchCmd represents the watch command.
var WatchCmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a Python source tree and keep its recorded code graph fresh",
		Long: `Watches a Python source tree for changes and re-records its code graph
on every change, rewriting the event stream so downstream consumers always
see a complete, current derivation.

Example usage:
  codegraph watch ./myproject
  codegraph watch ./myproject -o events.jsonl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runWatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "codegraph.jsonl",
		"destination file for the event stream")
	cmd.Flags().StringSliceVar(&opts.filterRoots, "filter", nil,
		"only record files under these roots (default: the watched directory)")

	return cmd
}

func runWatch(cmd *cobra.Command, root string, opts *watchOptions) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rescan(absRoot, opts); err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", absRoot)
	fmt.Fprintf(cmd.OutOrStdout(), "Recording to %s\n", opts.output)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl+C to stop\n")

	return watchAndRescan(ctx, absRoot, opts)
}
