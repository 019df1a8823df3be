package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/domain"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Build one acceptor per input line",
	Long: `Reads one input (label string or word sequence) per line and prints one
graph JSON per line, in input order. Blank lines and lines starting with '#'
are skipped. The first failure stops the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("topology", "t", "", "Acceptor family: asg, ctc or hmm")
	batchCmd.Flags().Int("depth", 0, "HMM stages to run (1-6)")
	batchCmd.Flags().IntP("jobs", "j", 4, "Builds to run at the same time")
	addCollaboratorFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, buildFlags())
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	inputs, err := readInputs(args[0])
	if err != nil {
		return err
	}

	opts, closeFn, err := engineOptions(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn("failed to close collaborators", "err", err)
		}
	}()

	jobs, _ := cmd.Flags().GetInt("jobs")
	engine := acceptor.New(append(opts,
		acceptor.WithLogger(logger),
		acceptor.WithConcurrency(jobs),
	)...)

	reqs := make([]domain.Request, len(inputs))
	for i, text := range inputs {
		reqs[i] = cfg.Request(text)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	graphs, err := engine.BuildBatch(ctx, reqs)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	for _, g := range graphs {
		if err := writeGraph(w, g, false); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readInputs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return inputs, nil
}
