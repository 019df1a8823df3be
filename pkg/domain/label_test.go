package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor/pkg/domain"
)

func TestLabel_String(t *testing.T) {
	tests := []struct {
		label domain.Label
		want  string
	}{
		{domain.Label{}, ""},
		{domain.Raw("a"), "a"},
		{domain.Index(258), "258"},
		{domain.Blank(), "blank"},
		{domain.Silence(), "_"},
		{domain.Epsilon(), "*"},
		{domain.Word("cat"), "cat"},
		{domain.PronunciationLabel("k a t"), "k a t"},
		{domain.Phoneme("k"), "k"},
		{domain.Triphone("", "k", "a"), "-k+a"},
		{domain.Allophone("k", "a", "t", 2), "k-a+t.2"},
		{domain.Tied(17), "17"},
		{domain.Syntax("a{k+t}.1"), "a{k+t}.1"},
	}

	for _, tt := range tests {
		t.Run(tt.label.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.label.String())
		})
	}
}

func TestLabel_MarshalJSON(t *testing.T) {
	edges := []domain.Edge{
		{From: 0, To: 1, Label: domain.Index(3), Weight: 1},
		{From: 1, To: 2, Label: domain.Triphone("k", "a", "t"), Pos: domain.PosInitial},
		{From: 2, To: 2},
	}

	data, err := json.Marshal(edges)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"from":0,"to":1,"label":3,"weight":1},
		{"from":1,"to":2,"label":"k-a+t","weight":0,"pos":"i"},
		{"from":2,"to":2,"label":null,"weight":0}
	]`, string(data))
}

func TestLabel_IsPlaceholder(t *testing.T) {
	assert.True(t, domain.Silence().IsPlaceholder())
	assert.True(t, domain.Epsilon().IsPlaceholder())
	assert.False(t, domain.Blank().IsPlaceholder())
	assert.False(t, domain.Phoneme("k").IsPlaceholder())
}

func TestLabelKind_String(t *testing.T) {
	assert.Equal(t, "allophone", domain.KindAllophone.String())
	assert.Equal(t, "kind(99)", domain.LabelKind(99).String())
}
