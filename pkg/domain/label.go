package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// LabelKind identifies which variant a Label holds.
// The kind changes as a graph moves through the pipeline stages:
// symbol → word → phoneme → triphone → allophone state → tied state.
type LabelKind uint8

const (
	KindUnset LabelKind = iota
	KindRaw
	KindIndex
	KindBlank
	KindSilence
	KindEpsilon
	KindWord
	KindPronunciation
	KindPhoneme
	KindTriphone
	KindAllophone
	KindTied
	KindSyntax
)

var kindNames = [...]string{
	KindUnset:         "unset",
	KindRaw:           "raw",
	KindIndex:         "index",
	KindBlank:         "blank",
	KindSilence:       "silence",
	KindEpsilon:       "epsilon",
	KindWord:          "word",
	KindPronunciation: "pronunciation",
	KindPhoneme:       "phoneme",
	KindTriphone:      "triphone",
	KindAllophone:     "allophone",
	KindTied:          "tied",
	KindSyntax:        "syntax",
}

func (k LabelKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Placeholder symbols used by the HMM lemma acceptor.
const (
	SilenceSymbol = "_"
	EpsilonSymbol = "*"
	BlankSymbol   = "blank"
)

// Label is the tagged variant carried by every edge.
// Only the fields relevant to Kind are meaningful.
type Label struct {
	Kind LabelKind

	// Symbol holds the raw symbol, word, phoneme string or allophone syntax.
	Symbol string

	// Index holds the label index or tied-state id.
	Index int

	// Left, Center, Right hold the triphone context. Empty means no context.
	Left, Center, Right string

	// SubState is the allophone sub-state index.
	SubState int
}

func Raw(symbol string) Label           { return Label{Kind: KindRaw, Symbol: symbol} }
func Index(i int) Label                 { return Label{Kind: KindIndex, Index: i} }
func Blank() Label                      { return Label{Kind: KindBlank} }
func Silence() Label                    { return Label{Kind: KindSilence} }
func Epsilon() Label                    { return Label{Kind: KindEpsilon} }
func Word(w string) Label               { return Label{Kind: KindWord, Symbol: w} }
func PronunciationLabel(p string) Label { return Label{Kind: KindPronunciation, Symbol: p} }
func Phoneme(p string) Label            { return Label{Kind: KindPhoneme, Symbol: p} }
func Tied(id int) Label                 { return Label{Kind: KindTied, Index: id} }
func Syntax(s string) Label             { return Label{Kind: KindSyntax, Symbol: s} }

// Triphone builds a context-dependent phoneme label.
func Triphone(left, center, right string) Label {
	return Label{Kind: KindTriphone, Left: left, Center: center, Right: right}
}

// Allophone builds one sub-state of a triphone.
func Allophone(left, center, right string, subState int) Label {
	return Label{Kind: KindAllophone, Left: left, Center: center, Right: right, SubState: subState}
}

// IsPlaceholder reports whether the label is the silence or epsilon placeholder.
// Placeholder edges pass through the HMM expansion stages unchanged.
func (l Label) IsPlaceholder() bool {
	return l.Kind == KindSilence || l.Kind == KindEpsilon
}

// String renders the label the way it appears in exported graphs.
func (l Label) String() string {
	switch l.Kind {
	case KindUnset:
		return ""
	case KindIndex, KindTied:
		return strconv.Itoa(l.Index)
	case KindBlank:
		return BlankSymbol
	case KindSilence:
		return SilenceSymbol
	case KindEpsilon:
		return EpsilonSymbol
	case KindTriphone:
		return fmt.Sprintf("%s-%s+%s", l.Left, l.Center, l.Right)
	case KindAllophone:
		return fmt.Sprintf("%s-%s+%s.%d", l.Left, l.Center, l.Right, l.SubState)
	default:
		return l.Symbol
	}
}

// MarshalJSON emits integer labels as numbers and everything else as strings.
func (l Label) MarshalJSON() ([]byte, error) {
	switch l.Kind {
	case KindIndex, KindTied:
		return json.Marshal(l.Index)
	case KindUnset:
		return []byte("null"), nil
	default:
		return json.Marshal(l.String())
	}
}
