package file

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/domain"
)

// Bundle is a resource file holding a lexicon and a state-tying table.
//
//	lexicon:
//	  cat:
//	    - phon: k a t
//	      score: 0
//	state_tying:
//	  "k{#+a}@i.0": 17
type Bundle struct {
	Lexicon    map[string][]domain.Pronunciation `yaml:"lexicon" json:"lexicon"`
	StateTying map[string]int                    `yaml:"state_tying" json:"state_tying"`
}

// NewLexicon returns the bundle lexicon as an in-memory adapter.
func (b *Bundle) NewLexicon() *memory.Lexicon {
	return memory.NewLexicon(b.Lexicon)
}

// NewStateTying returns the bundle table as an in-memory adapter.
func (b *Bundle) NewStateTying() *memory.StateTying {
	return memory.NewStateTying(b.StateTying)
}

// LoadBundle reads a bundle file. The format follows the extension:
// ".json" is JSON, anything else is YAML.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource bundle: %w", err)
	}

	var b Bundle
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	for word, prons := range b.Lexicon {
		for i, p := range prons {
			if strings.TrimSpace(p.Phonemes) == "" {
				return nil, fmt.Errorf("%w: variant %d of %q has no phonemes", domain.ErrMalformedInput, i, word)
			}
		}
	}
	return &b, nil
}

// LoadStateTying reads a plain state-tying table: one "syntax id" pair per
// line, separated by whitespace. Blank lines and lines starting with '#'
// are skipped.
func LoadStateTying(path string) (*memory.StateTying, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state tying file: %w", err)
	}
	defer f.Close()

	entries := make(map[string]int)
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s:%d: want \"syntax id\", got %q",
				domain.ErrMalformedInput, filepath.Base(path), line, text)
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: id %q is not an integer",
				domain.ErrMalformedInput, filepath.Base(path), line, fields[1])
		}
		entries[fields[0]] = id
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read state tying file: %w", err)
	}
	return memory.NewStateTying(entries), nil
}
