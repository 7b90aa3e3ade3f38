package cli

import (
	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"
	"github.com/OFFIS-RIT/paperkg/pkg/logger/console"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "paperkg",
	Short: "Build a knowledge graph from research papers",
	Long: `paperkg extracts entities and typed relationships from a corpus of
research-paper PDFs with a language model and merges them into a
deduplicated property graph in PostgreSQL or SQLite.

Configuration is read from the environment and an optional .env file.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			InitLogger(true)
		}
	},
}

// InitLogger installs the console backend. DEBUG and LOG_FORMAT=json are
// read from the environment; forceDebug enables debug output regardless.
func InitLogger(forceDebug bool) {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: forceDebug || util.GetEnvBool("DEBUG", false),
		JSON:  util.GetEnvString("LOG_FORMAT", "text") == "json",
	}))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging (overrides DEBUG)")
}
