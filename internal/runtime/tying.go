package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/acceptor/pkg/domain"
)

const (
	silenceSyntax  = "[SILENCE]"
	missingContext = "#"
)

// AlloSyntax renders the canonical state-tying key of an edge label:
//
//	silence   [SILENCE]{#+#}<pos>.0
//	epsilon   *<pos>
//	allophone center{left+right}<pos>.substate
//
// An empty context is written as "#"; pos is "@i", "@f", "@i@f" or nothing.
func AlloSyntax(label domain.Label, pos domain.PositionTag) (string, error) {
	var b strings.Builder

	switch label.Kind {
	case domain.KindSilence:
		b.WriteString(silenceSyntax)
		b.WriteString("{#+#}")
	case domain.KindEpsilon:
		b.WriteString(domain.EpsilonSymbol)
	case domain.KindAllophone:
		b.WriteString(label.Center)
		b.WriteByte('{')
		b.WriteString(orMissing(label.Left))
		b.WriteByte('+')
		b.WriteString(orMissing(label.Right))
		b.WriteByte('}')
	default:
		return "", fmt.Errorf("%w: no allophone syntax for %s label %q", domain.ErrInvariant, label.Kind, label)
	}

	switch pos {
	case domain.PosInitialFinal:
		b.WriteString("@i@f")
	case domain.PosInitial:
		b.WriteString("@i")
	case domain.PosFinal:
		b.WriteString("@f")
	}

	switch label.Kind {
	case domain.KindSilence:
		b.WriteString(".0")
	case domain.KindAllophone:
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(label.SubState))
	}
	return b.String(), nil
}

func orMissing(ctx string) string {
	if ctx == "" {
		return missingContext
	}
	return ctx
}

// TieStates relabels every edge with its tied-state id (convert) or its
// canonical syntax string. alloMap must hold every non-epsilon syntax of the
// graph. Epsilon edges stay epsilon.
func TieStates(g *domain.Graph, alloMap map[string]int, convert bool) error {
	out := make([]domain.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = e
		if e.Label.Kind == domain.KindEpsilon {
			continue
		}

		key, err := AlloSyntax(e.Label, e.Pos)
		if err != nil {
			return err
		}
		if !convert {
			out[i].Label = domain.Syntax(key)
			continue
		}
		id, ok := alloMap[key]
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrAllophoneNotFound, key)
		}
		out[i].Label = domain.Tied(id)
	}
	g.Edges = out
	return nil
}
