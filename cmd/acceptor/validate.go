package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/presentation/tui"
	"github.com/aretw0/acceptor/pkg/adapters/file"
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph.json>",
	Short: "Check an exported graph for consistency",
	Long: `Reads a graph written by "acceptor build" and reports edges that are out of
range or point backwards, and states other than the final one with no way forward.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := file.ReadGraph(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if dangling := tui.Dangling(g); len(dangling) > 0 {
			return fmt.Errorf("validation failed: dangling states %v", dangling)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Graph is valid: %d states, %d edges\n", g.NumStates, len(g.Edges))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
