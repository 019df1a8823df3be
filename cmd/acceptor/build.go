package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/internal/presentation/tui"
	"github.com/aretw0/acceptor/pkg/adapters/file"
)

var buildCmd = &cobra.Command{
	Use:   "build [text...]",
	Short: "Build one acceptor graph",
	Long: `Builds the acceptor for a label string (asg, ctc) or a word sequence (hmm)
and prints it as JSON. Parameters come from --config, then --set, then the
flags of this command.

Example:
  acceptor build --topology hmm --resources bundle.yaml --set depth=4 "the cat"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("topology", "t", "", "Acceptor family: asg, ctc or hmm")
	buildCmd.Flags().Int("depth", 0, "HMM stages to run (1-6)")
	addCollaboratorFlags(buildCmd)
	buildCmd.Flags().Bool("summary", false, "Print a short summary on stderr")
	buildCmd.Flags().StringP("out", "o", "", "Write the graph to this file instead of stdout")
}

func addCollaboratorFlags(cmd *cobra.Command) {
	cmd.Flags().String("resources", "", "Lexicon/state-tying bundle (YAML or JSON)")
	cmd.Flags().String("state-tying", "", "State-tying table with one \"syntax id\" pair per line")
	cmd.Flags().String("redis", "", "Redis address holding the lexicon and state tying")
}

func buildFlags() map[string]string {
	flags := map[string]string{
		"topology": "topology",
		"depth":    "depth",
	}
	for k, v := range collaboratorFlags {
		flags[k] = v
	}
	return flags
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, buildFlags())
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	opts, closeFn, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close collaborators", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := acceptor.New(append(opts, acceptor.WithLogger(logger))...)
	text := strings.Join(args, " ")
	req := cfg.Request(text)

	started := time.Now()
	g, err := engine.Build(ctx, req)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		tui.PrintSummary(termenv.NewOutput(os.Stderr), tui.Summary{
			Topology: req.Topology,
			Input:    text,
			Graph:    g,
			Elapsed:  elapsed,
		})
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := file.WriteGraph(out, g); err != nil {
			return err
		}
		logger.Info("graph written", "path", out)
		return nil
	}

	return writeGraph(os.Stdout, g, stdoutIsTerminal())
}
