package cli

import (
	"fmt"
	"io"

	"github.com/OFFIS-RIT/paperkg/pkg/store"

	"github.com/spf13/cobra"
)

var checkSample int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print node and edge counts with sample data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := LoadConfig()
		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context(), checkSample)
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&checkSample, "sample", 5, "number of sample nodes and relationships to print")
}

func printStats(w io.Writer, stats *store.GraphStats) {
	fmt.Fprintf(w, "Nodes: %d\n", stats.NodeCount)
	fmt.Fprintf(w, "Edges: %d\n", stats.EdgeCount)

	if stats.NodeCount == 0 {
		fmt.Fprintln(w, "\nThe graph is empty. Run 'paperkg build' first.")
		return
	}

	if len(stats.SampleNodes) > 0 {
		fmt.Fprintln(w, "\nSample nodes:")
		for _, n := range stats.SampleNodes {
			fmt.Fprintf(w, "  - %s (%s)\n", n.Name, n.Type)
		}
	}

	if stats.EdgeCount == 0 {
		fmt.Fprintln(w, "\nNodes exist but no relationships were stored.")
		return
	}
	if len(stats.SampleEdges) > 0 {
		fmt.Fprintln(w, "\nSample relationships:")
		for _, e := range stats.SampleEdges {
			fmt.Fprintf(w, "  %s --[%s]--> %s\n", e.Source, e.Relation, e.Target)
		}
	}
}
