package main

import (
	"fmt"

	"github.com/aretw0/acceptor"
	"github.com/aretw0/acceptor/pkg/adapters/file"
	"github.com/aretw0/acceptor/pkg/adapters/redis"
	"github.com/aretw0/acceptor/pkg/config"
)

// collaboratorFlags maps the resource flags shared by build, batch and
// serve to their config keys.
var collaboratorFlags = map[string]string{
	"resources":   "resources",
	"state-tying": "state_tying_file",
	"redis":       "redis.addr",
}

// engineOptions wires the lexicon and state-tying table described by cfg.
// Redis wins over files. The returned func releases the backend.
func engineOptions(cfg *config.Config) ([]acceptor.Option, func() error, error) {
	noop := func() error { return nil }

	if cfg.Redis.Addr != "" {
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		return []acceptor.Option{
			acceptor.WithLexicon(store),
			acceptor.WithStateTying(store),
		}, store.Close, nil
	}

	var opts []acceptor.Option
	if cfg.Resources != "" {
		bundle, err := file.LoadBundle(cfg.Resources)
		if err != nil {
			return nil, noop, err
		}
		opts = append(opts, acceptor.WithLexicon(bundle.NewLexicon()))
		if len(bundle.StateTying) > 0 {
			opts = append(opts, acceptor.WithStateTying(bundle.NewStateTying()))
		}
	}
	if cfg.StateTyingFile != "" {
		tying, err := file.LoadStateTying(cfg.StateTyingFile)
		if err != nil {
			return nil, noop, fmt.Errorf("state tying: %w", err)
		}
		opts = append(opts, acceptor.WithStateTying(tying))
	}
	return opts, noop, nil
}
