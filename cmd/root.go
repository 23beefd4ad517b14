package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LegacyCodeHQ/codegraph/cmd/index"
	"github.com/LegacyCodeHQ/codegraph/cmd/render"
	"github.com/LegacyCodeHQ/codegraph/cmd/scan"
	"github.com/LegacyCodeHQ/codegraph/cmd/watch"
	"github.com/LegacyCodeHQ/codegraph/cmd/why"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codegraph",
	Short: "Record and analyze code-relationship graphs",
	Long: `Codegraph records code-relationship events (imports, class and function
definitions, class references, function calls) as a JSON Lines stream, and
analyzes recorded streams: folding them into deduplicated graphs, rendering
them, querying dependency paths, and indexing them into SQLite.

Use 'codegraph --help' to see all available commands, or
'codegraph <command> --help' for detailed information about a specific
command.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(scan.ScanCmd)
	rootCmd.AddCommand(render.RenderCmd)
	rootCmd.AddCommand(why.WhyCmd)
	rootCmd.AddCommand(index.IndexCmd)
	rootCmd.AddCommand(watch.WatchCmd)

	if rootCmd.Annotations == nil {
		rootCmd.Annotations = make(map[string]string)
	}
	rootCmd.Annotations["buildDate"] = buildDate
	rootCmd.Annotations["commit"] = commit
	rootCmd.Version = version

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is .codegraph.yaml in the working directory)")
}

// initConfig loads an optional config file carrying defaults for subcommand
// flags: filter (list of roots), format, output.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".codegraph")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CODEGRAPH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", cfgFile, err)
	}
}
