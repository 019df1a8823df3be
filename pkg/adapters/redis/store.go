package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Store implements ports.Lexicon and ports.StateTying on two Redis hashes:
// prefix+"lexicon" maps a word to its JSON-encoded pronunciations and
// prefix+"tying" maps an allophone syntax to its tied-state id.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration refreshed on both hashes at every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "acceptor:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) lexiconKey() string {
	return s.prefix + "lexicon"
}

func (s *Store) tyingKey() string {
	return s.prefix + "tying"
}

// Pronunciations reads the variants stored for word.
func (s *Store) Pronunciations(ctx context.Context, word string) ([]domain.Pronunciation, error) {
	word = strings.ToLower(word)
	val, err := s.client.HGet(ctx, s.lexiconKey(), word).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %q", domain.ErrWordNotFound, word)
		}
		return nil, fmt.Errorf("failed to get pronunciations from redis: %w", err)
	}

	var prons []domain.Pronunciation
	if err := json.Unmarshal([]byte(val), &prons); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pronunciations of %q: %w", word, err)
	}
	return prons, nil
}

// TiedState reads the id tied to the allophone syntax.
func (s *Store) TiedState(ctx context.Context, allophone string) (int, error) {
	val, err := s.client.HGet(ctx, s.tyingKey(), allophone).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return 0, fmt.Errorf("%w: %q", domain.ErrAllophoneNotFound, allophone)
		}
		return 0, fmt.Errorf("failed to get tied state from redis: %w", err)
	}

	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("corrupt tied state for %q: %w", allophone, err)
	}
	return id, nil
}

// PutPronunciations replaces the variants of word.
func (s *Store) PutPronunciations(ctx context.Context, word string, prons ...domain.Pronunciation) error {
	return s.Seed(ctx, map[string][]domain.Pronunciation{word: prons}, nil)
}

// PutTiedState maps an allophone syntax to a tied-state id.
func (s *Store) PutTiedState(ctx context.Context, allophone string, id int) error {
	return s.Seed(ctx, nil, map[string]int{allophone: id})
}

// Seed writes a whole lexicon and state-tying table in one pipeline.
func (s *Store) Seed(ctx context.Context, lexicon map[string][]domain.Pronunciation, tying map[string]int) error {
	pipe := s.client.Pipeline()

	if len(lexicon) > 0 {
		fields := make(map[string]any, len(lexicon))
		for word, prons := range lexicon {
			data, err := json.Marshal(prons)
			if err != nil {
				return fmt.Errorf("failed to marshal pronunciations of %q: %w", word, err)
			}
			fields[strings.ToLower(word)] = data
		}
		pipe.HSet(ctx, s.lexiconKey(), fields)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.lexiconKey(), s.ttl)
		}
	}

	if len(tying) > 0 {
		fields := make(map[string]any, len(tying))
		for syntax, id := range tying {
			fields[syntax] = id
		}
		pipe.HSet(ctx, s.tyingKey(), fields)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.tyingKey(), s.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
