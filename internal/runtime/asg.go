package runtime

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/acceptor/pkg/domain"
)

// buildASG folds repetitions, chains the folded labels and adds self-loops.
func (e *Engine) buildASG(ctx context.Context, req domain.Request) (*domain.Graph, error) {
	labels, err := convertLabels(req)
	if err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	topo := domain.TopologyASG

	err = e.stage(ctx, topo, domain.StageASGFold, g, func() error {
		labels = FoldRepetitions(labels, req.NumLabels, req.ASGRepetition, req.ReferenceQuirks)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, topo, domain.StageASGChain, g, func() error {
		chain(g, labels)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = e.stage(ctx, topo, domain.StageLoops, g, func() error {
		AddLoops(g, 1, g.NumStates)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// FoldRepetitions replaces runs of repeated labels with repetition labels.
//
// The label itself is kept once; the r repeats that follow are chunked
// greedily into labels Index(numLabels+k), k in [1, maxRep]. maxRep == 0
// disables folding. A count still pending at the end of the sequence is
// flushed unless dropTrailing is set, which reproduces the reference output.
func FoldRepetitions(seq []domain.Label, numLabels, maxRep int, dropTrailing bool) []domain.Label {
	if maxRep == 0 {
		out := make([]domain.Label, len(seq))
		copy(out, seq)
		return out
	}

	out := make([]domain.Label, 0, len(seq))
	count := 0
	for i, l := range seq {
		if i > 0 && l == seq[i-1] {
			if count < maxRep {
				count++
			} else {
				out = append(out, domain.Index(numLabels+count))
				count = 1
			}
			continue
		}
		if count != 0 {
			out = append(out, domain.Index(numLabels+count))
			count = 0
		}
		out = append(out, l)
	}
	if count != 0 && !dropTrailing {
		out = append(out, domain.Index(numLabels+count))
	}
	return out
}

// chain creates n+1 states and one unit-cost edge per label.
func chain(g *domain.Graph, labels []domain.Label) {
	for i, l := range labels {
		g.AddEdge(i, i+1, l, domain.ArcWeight, domain.PosInterior)
	}
	g.NumStates = len(labels) + 1
}

// convertLabels turns the request sequence into labels. With label conversion
// every label must be a single character whose code point is below NumLabels.
func convertLabels(req domain.Request) ([]domain.Label, error) {
	raw := req.Labels()
	if len(raw) == 0 {
		return nil, domain.ErrEmptySequence
	}

	labels := make([]domain.Label, 0, len(raw))
	for i, s := range raw {
		if s == "" {
			return nil, fmt.Errorf("%w: empty label at position %d", domain.ErrMalformedInput, i)
		}
		if !req.LabelConversion {
			labels = append(labels, domain.Raw(s))
			continue
		}
		if utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("%w: label %q at position %d is not a single character",
				domain.ErrMalformedInput, s, i)
		}
		r, _ := utf8.DecodeRuneInString(s)
		if int(r) >= req.NumLabels {
			return nil, fmt.Errorf("%w: %q (%d) at position %d, num_labels %d",
				domain.ErrLabelOutOfRange, s, r, i, req.NumLabels)
		}
		labels = append(labels, domain.Index(int(r)))
	}
	return labels, nil
}
