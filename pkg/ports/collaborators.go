package ports

import (
	"context"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Lexicon resolves words to their pronunciation variants.
// It is consulted once per word and HMM build, before the phoneme stage runs.
type Lexicon interface {
	// Pronunciations returns the ordered variants for word.
	// Returns an error wrapping domain.ErrWordNotFound if the word is absent.
	Pronunciations(ctx context.Context, word string) ([]domain.Pronunciation, error)
}

// StateTying maps canonical allophone-state strings to tied-state ids.
type StateTying interface {
	// TiedState returns the id for a canonical allophone string such as "a{k+t}@i.0".
	// Returns an error wrapping domain.ErrAllophoneNotFound if the string is absent.
	TiedState(ctx context.Context, allophone string) (int, error)
}

// Builder is the driving port implemented by the engine and consumed by the
// HTTP and MCP adapters.
type Builder interface {
	Build(ctx context.Context, req domain.Request) (*domain.Graph, error)
}
