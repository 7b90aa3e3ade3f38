package cli

import (
	"fmt"

	"github.com/OFFIS-RIT/paperkg/pkg/store/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or revert the PostgreSQL schema",
	Long: `Migrate applies the embedded schema (default) or reverts it.
Running 'down' followed by 'up' resets the graph.

The SQLite store creates its schema when opened and needs no migration.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		cfg := LoadConfig()
		if cfg.StoreAdapter != "postgres" {
			return fmt.Errorf("migrate only applies to the postgres store, STORE_ADAPTER is %q", cfg.StoreAdapter)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		switch direction {
		case "up":
			return migrations.Up(cfg.DatabaseURL)
		case "down":
			return migrations.Down(cfg.DatabaseURL)
		default:
			return fmt.Errorf("unknown direction %q (want up or down)", direction)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
