package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/acceptor/pkg/domain"
)

// Lexicon implements ports.Lexicon in memory.
// Safe for concurrent use. Words are matched case-insensitively.
type Lexicon struct {
	data map[string][]domain.Pronunciation
	mu   sync.RWMutex
}

// NewLexicon creates a lexicon seeded with entries.
func NewLexicon(entries map[string][]domain.Pronunciation) *Lexicon {
	l := &Lexicon{
		data: make(map[string][]domain.Pronunciation, len(entries)),
	}
	for word, prons := range entries {
		l.Put(word, prons...)
	}
	return l
}

// Put replaces the pronunciations of word.
func (l *Lexicon) Put(word string, prons ...domain.Pronunciation) {
	copied := make([]domain.Pronunciation, len(prons))
	copy(copied, prons)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[strings.ToLower(word)] = copied
}

// Pronunciations returns a copy of the variants stored for word.
func (l *Lexicon) Pronunciations(ctx context.Context, word string) ([]domain.Pronunciation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prons, ok := l.data[strings.ToLower(word)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrWordNotFound, word)
	}

	ret := make([]domain.Pronunciation, len(prons))
	copy(ret, prons)
	return ret, nil
}

// Len returns the number of words.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.data)
}

// StateTying implements ports.StateTying in memory.
// Safe for concurrent use.
type StateTying struct {
	data map[string]int
	mu   sync.RWMutex
}

// NewStateTying creates a state-tying table seeded with entries.
func NewStateTying(entries map[string]int) *StateTying {
	s := &StateTying{
		data: make(map[string]int, len(entries)),
	}
	for syntax, id := range entries {
		s.data[syntax] = id
	}
	return s
}

// Put maps an allophone syntax to a tied-state id.
func (s *StateTying) Put(syntax string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[syntax] = id
}

// TiedState returns the id tied to the allophone syntax.
func (s *StateTying) TiedState(ctx context.Context, allophone string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.data[allophone]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrAllophoneNotFound, allophone)
	}
	return id, nil
}

// Len returns the number of allophones.
func (s *StateTying) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Entries returns a copy of the table.
func (s *StateTying) Entries() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}
