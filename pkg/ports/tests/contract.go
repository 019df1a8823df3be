package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/ports"
)

// LexiconContractTest is a reusable suite that verifies an adapter complies with ports.Lexicon.
// The adapter must already contain setupData.
func LexiconContractTest(t *testing.T, lex ports.Lexicon, setupData map[string][]domain.Pronunciation) {
	t.Helper()
	ctx := context.Background()

	t.Run("Pronunciations_Success", func(t *testing.T) {
		for word, want := range setupData {
			got, err := lex.Pronunciations(ctx, word)
			if err != nil {
				t.Fatalf("unexpected error for word %q: %v", word, err)
			}
			if len(got) != len(want) {
				t.Fatalf("variant count mismatch for %q: got %d, want %d", word, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("variant %d of %q: got %+v, want %+v", i, word, got[i], want[i])
				}
			}
		}
	})

	t.Run("Pronunciations_NotFound", func(t *testing.T) {
		_, err := lex.Pronunciations(ctx, "no-such-word")
		if !errors.Is(err, domain.ErrWordNotFound) {
			t.Errorf("expected ErrWordNotFound, got %v", err)
		}
	})
}

// StateTyingContractTest is a reusable suite that verifies an adapter complies with ports.StateTying.
func StateTyingContractTest(t *testing.T, tying ports.StateTying, setupData map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("TiedState_Success", func(t *testing.T) {
		for key, want := range setupData {
			got, err := tying.TiedState(ctx, key)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", key, err)
			}
			if got != want {
				t.Errorf("id mismatch for %q: got %d, want %d", key, got, want)
			}
		}
	})

	t.Run("TiedState_Deterministic", func(t *testing.T) {
		for key := range setupData {
			a, _ := tying.TiedState(ctx, key)
			b, _ := tying.TiedState(ctx, key)
			if a != b {
				t.Errorf("lookup of %q is not stable: %d then %d", key, a, b)
			}
		}
	})

	t.Run("TiedState_NotFound", func(t *testing.T) {
		_, err := tying.TiedState(ctx, "zz{#+#}.9")
		if !errors.Is(err, domain.ErrAllophoneNotFound) {
			t.Errorf("expected ErrAllophoneNotFound, got %v", err)
		}
	})
}
