package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/acceptor/pkg/adapters/file"
	"github.com/aretw0/acceptor/pkg/adapters/redis"
	"github.com/aretw0/acceptor/pkg/domain"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a lexicon and state-tying table into Redis",
	Long: `Copies a resource bundle and/or a plain state-tying table into Redis so that
build, serve and mcp can run with --redis.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addCollaboratorFlags(seedCmd)
	seedCmd.Flags().Duration("ttl", 0, "Expire the seeded keys after this long (0 keeps them)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, collaboratorFlags)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if cfg.Redis.Addr == "" {
		return errors.New("seed needs a Redis address (--redis or redis.addr)")
	}
	if cfg.Resources == "" && cfg.StateTyingFile == "" {
		return errors.New("nothing to seed: set --resources and/or --state-tying")
	}

	var lexicon map[string][]domain.Pronunciation
	tying := map[string]int{}
	if cfg.Resources != "" {
		bundle, err := file.LoadBundle(cfg.Resources)
		if err != nil {
			return err
		}
		lexicon = bundle.Lexicon
		for k, v := range bundle.StateTying {
			tying[k] = v
		}
	}
	if cfg.StateTyingFile != "" {
		table, err := file.LoadStateTying(cfg.StateTyingFile)
		if err != nil {
			return err
		}
		for k, v := range table.Entries() {
			tying[k] = v
		}
	}

	ttl, _ := cmd.Flags().GetDuration("ttl")
	opts := []redis.Option{redis.WithTTL(ttl)}
	if cfg.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
	}
	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.Seed(ctx, lexicon, tying); err != nil {
		return err
	}

	logger.Info("seeded redis", "addr", cfg.Redis.Addr, "words", len(lexicon), "allophones", len(tying))
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d words and %d allophones\n", len(lexicon), len(tying))
	return nil
}
