package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor/pkg/config"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/schema"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "hmm", cfg.Topology)
	assert.Equal(t, 2, cfg.ASGRepetition)
	assert.Equal(t, 256, cfg.NumLabels)
	assert.Equal(t, 6, cfg.Depth)
	assert.Equal(t, 3, cfg.AlloNumStates)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "fsa.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
topology: CTC
num_labels: 128
label_conversion: true
redis:
  addr: localhost:6379
`), 0644))

	cfg, err := config.Load(yamlPath, []string{"asg_repetition=3", "redis.prefix=test:", "reference_quirks=true"})
	require.NoError(t, err)

	assert.Equal(t, "ctc", cfg.Topology)
	assert.Equal(t, 128, cfg.NumLabels)
	assert.Equal(t, 3, cfg.ASGRepetition)
	assert.True(t, cfg.LabelConversion)
	assert.True(t, cfg.ReferenceQuirks)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "test:", cfg.Redis.Prefix)

	jsonPath := filepath.Join(dir, "fsa.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"topology": "asg", "depth": 2}`), 0644))
	cfg, err = config.Load(jsonPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "asg", cfg.Topology)
	assert.Equal(t, 2, cfg.Depth)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name      string
		overrides []string
		key       string
		sentinel  error
	}{
		{"unknown topology", []string{"topology=wfst"}, "topology", domain.ErrUnknownTopology},
		{"depth zero", []string{"depth=0"}, "depth", domain.ErrInvalidConfig},
		{"negative repetition", []string{"asg_repetition=-1"}, "asg_repetition", domain.ErrInvalidConfig},
		{"no labels", []string{"num_labels=0"}, "num_labels", domain.ErrInvalidConfig},
		{"no allophone states", []string{"allo_num_states=0"}, "allo_num_states", domain.ErrInvalidConfig},
		{"log level", []string{"log_level=verbose"}, "log_level", domain.ErrInvalidConfig},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load("", tc.overrides)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)

			errs := schema.ValidationErrors(err)
			require.Len(t, errs, 1)
			var ve *schema.ValidationError
			require.ErrorAs(t, errs[0], &ve)
			assert.Equal(t, tc.key, ve.Key)
		})
	}
}

func TestLoad_BadInput(t *testing.T) {
	_, err := config.Load("", []string{"depth"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = config.Load("", []string{"depth=deep"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = config.Load("", []string{"no_such_key=1"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestConfig_Request(t *testing.T) {
	cfg, err := config.Load("", []string{"depth=4", "label_conversion=true"})
	require.NoError(t, err)

	req := cfg.Request("the cat")
	assert.Equal(t, domain.TopologyHMM, req.Topology)
	assert.Equal(t, "the cat", req.Text)
	assert.Equal(t, 4, req.Depth)
	assert.Equal(t, 3, req.AlloNumStates)
	assert.True(t, req.LabelConversion)
	assert.NoError(t, schema.ValidateRequest(req))
}

func TestDecodeRequest(t *testing.T) {
	req, err := config.DecodeRequest(map[string]any{
		"topology": "asg",
		"text":     "hello",
		"depth":    float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TopologyASG, req.Topology)
	assert.Equal(t, "hello", req.Text)
	assert.Equal(t, 3, req.Depth)
	assert.Equal(t, 2, req.ASGRepetition)

	req, err = config.DecodeRequest(map[string]any{
		"sequence": []any{"the", "cat"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TopologyHMM, req.Topology)
	assert.Equal(t, []string{"the", "cat"}, req.Sequence)

	_, err = config.DecodeRequest(map[string]any{"resources": "/etc/passwd"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = config.DecodeRequest(map[string]any{"topology": "fst"})
	assert.ErrorIs(t, err, domain.ErrUnknownTopology)
}
