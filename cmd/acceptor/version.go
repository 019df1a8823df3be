package main

import (
	"fmt"
	"io"
	goruntime "runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/domain"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the acceptor version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), versionShort)
	},
}

func printVersion(w io.Writer, short bool) {
	v := strings.TrimSpace(acceptor.Version)
	if short {
		fmt.Fprintln(w, v)
		return
	}
	fmt.Fprintf(w, "acceptor %s\n", v)
	fmt.Fprintf(w, "  go:         %s %s/%s\n", goruntime.Version(), goruntime.GOOS, goruntime.GOARCH)
	fmt.Fprintf(w, "  topologies: %s, %s, %s\n", domain.TopologyASG, domain.TopologyCTC, domain.TopologyHMM)
	fmt.Fprintf(w, "  hmm depth:  1-%d\n", domain.MaxDepth)
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	rootCmd.AddCommand(versionCmd)
}
