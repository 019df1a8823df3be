package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/acceptor/pkg/domain"
)

// requestKeys are the keys a remote caller may set for a single build.
var requestKeys = map[string]bool{
	"topology":         true,
	"asg_repetition":   true,
	"num_labels":       true,
	"depth":            true,
	"allo_num_states":  true,
	"label_conversion": true,
	"reference_quirks": true,
}

// requestInput holds the sequence part of a remote build request.
type requestInput struct {
	Text     string   `mapstructure:"text"`
	Sequence []string `mapstructure:"sequence"`
}

// DecodeRequest turns a generic map (HTTP body, MCP tool arguments) into a
// validated build request. Unset parameters take the Defaults.
func DecodeRequest(raw map[string]any) (domain.Request, error) {
	params := Defaults()
	input := map[string]any{}

	for k, v := range raw {
		switch {
		case k == "text" || k == "sequence":
			input[k] = v
		case requestKeys[k]:
			params[k] = v
		default:
			return domain.Request{}, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidConfig, k)
		}
	}

	cfg, err := Decode(params)
	if err != nil {
		return domain.Request{}, err
	}

	var in requestInput
	if err := mapstructure.WeakDecode(input, &in); err != nil {
		return domain.Request{}, fmt.Errorf("%w: %v", domain.ErrMalformedInput, err)
	}

	req := cfg.Request(in.Text)
	req.Sequence = in.Sequence
	return req, nil
}
