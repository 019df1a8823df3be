package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/schema"
)

// Config is the file-level description of an acceptor build.
type Config struct {
	Topology        string `yaml:"topology" mapstructure:"topology" validate:"required,oneof=asg ctc hmm"`
	ASGRepetition   int    `yaml:"asg_repetition" mapstructure:"asg_repetition" validate:"gte=0"`
	NumLabels       int    `yaml:"num_labels" mapstructure:"num_labels" validate:"gte=1"`
	Depth           int    `yaml:"depth" mapstructure:"depth" validate:"gte=1"`
	AlloNumStates   int    `yaml:"allo_num_states" mapstructure:"allo_num_states" validate:"gte=1"`
	LabelConversion bool   `yaml:"label_conversion" mapstructure:"label_conversion"`
	ReferenceQuirks bool   `yaml:"reference_quirks" mapstructure:"reference_quirks"`

	// Resources is a lexicon/state-tying bundle (see file.LoadBundle).
	Resources string `yaml:"resources" mapstructure:"resources"`
	// StateTyingFile is a plain "syntax id" table; it wins over the bundle table.
	StateTyingFile string `yaml:"state_tying_file" mapstructure:"state_tying_file"`

	Redis    RedisConfig `yaml:"redis" mapstructure:"redis"`
	LogLevel string      `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// RedisConfig points the collaborators at a Redis server instead of files.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

// Defaults returns the configuration used when a key is not set.
func Defaults() map[string]any {
	return map[string]any{
		"topology":        string(domain.TopologyHMM),
		"asg_repetition":  2,
		"num_labels":      256,
		"depth":           domain.MaxDepth,
		"allo_num_states": 3,
		"log_level":       "info",
	}
}

// Load reads path (YAML, or JSON for ".json"; empty means defaults only),
// applies key=value overrides and validates the result. Nested keys use
// dots: "redis.addr=localhost:6379".
func Load(path string, overrides []string) (*Config, error) {
	raw := Defaults()

	if path != "" {
		fromFile, err := readFile(path)
		if err != nil {
			return nil, err
		}
		merge(raw, fromFile)
	}

	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: override %q is not key=value", domain.ErrInvalidConfig, kv)
		}
		set(raw, strings.Split(key, "."), strings.TrimSpace(value))
	}

	return Decode(raw)
}

// Decode converts a generic map (file contents, tool arguments) into a
// validated Config. Values are weakly typed: "4" decodes into an int field.
func Decode(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	cfg.Topology = strings.ToLower(strings.TrimSpace(cfg.Topology))
	if err := schema.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Request builds the domain request for text.
func (c *Config) Request(text string) domain.Request {
	return domain.Request{
		Topology:        domain.Topology(c.Topology),
		Text:            text,
		ASGRepetition:   c.ASGRepetition,
		NumLabels:       c.NumLabels,
		Depth:           c.Depth,
		AlloNumStates:   c.AlloNumStates,
		LabelConversion: c.LabelConversion,
		ReferenceQuirks: c.ReferenceQuirks,
	}
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidConfig, filepath.Base(path), err)
	}
	return raw, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

func set(dst map[string]any, path []string, value string) {
	for _, k := range path[:len(path)-1] {
		sub, ok := dst[k].(map[string]any)
		if !ok {
			sub = map[string]any{}
			dst[k] = sub
		}
		dst = sub
	}
	dst[path[len(path)-1]] = value
}
