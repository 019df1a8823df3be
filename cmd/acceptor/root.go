package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/internal/logging"
	"github.com/aretw0/acceptor/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "acceptor",
	Short: "Acceptor builds label-topology graphs for speech recognition training",
	Long: `Acceptor turns a label string or a word sequence into an ASG, CTC or HMM
acceptor graph: a state count plus an ordered list of weighted, labelled edges.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML or JSON file with build parameters")
	rootCmd.PersistentFlags().StringArray("set", nil, "Override a parameter (key=value, repeatable)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads --config and --set, then applies the flags named in
// flagKeys (flag name → config key) when the user changed them.
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides, _ := cmd.Flags().GetStringArray("set")

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides = append(overrides, key+"="+f.Value.String())
		}
	}
	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		overrides = append(overrides, "log_level="+level)
	}

	return config.Load(path, overrides)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}
