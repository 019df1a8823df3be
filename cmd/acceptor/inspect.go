package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/presentation/tui"
	"github.com/aretw0/acceptor/pkg/adapters/file"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <graph.json>",
	Short: "Describe an exported graph",
	Long: `Prints a Markdown report of a graph written by "acceptor build", rendered for
the terminal when stdout is one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := file.ReadGraph(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		md := tui.Report(filepath.Base(args[0]), g)
		if !stdoutIsTerminal() {
			fmt.Fprint(out, md)
			return nil
		}
		render, err := tui.NewRenderer(100)
		if err != nil {
			return err
		}
		rendered, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
