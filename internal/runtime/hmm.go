package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/acceptor/pkg/domain"
)

// buildHMM runs the depth-controlled HMM pipeline. Each stage consumes the
// graph produced by the previous one; collaborator lookups happen before the
// stage that needs them so the stages themselves stay free of I/O.
func (e *Engine) buildHMM(ctx context.Context, req domain.Request) (*domain.Graph, error) {
	topo := domain.TopologyHMM
	g := domain.NewGraph()

	if req.Depth < 1 {
		e.logger.WarnContext(ctx, "no acceptor chosen, returning empty graph", "depth", req.Depth)
		return g, nil
	}

	words := req.Words()
	if len(words) == 0 {
		return nil, domain.ErrEmptySequence
	}

	err := e.stage(ctx, topo, domain.StageLemma, g, func() error {
		LemmaAcceptor(g, words)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Depth >= 2 {
		var phonDict map[string][]domain.Pronunciation
		err = e.stage(ctx, topo, domain.StageLexiconFetch, g, func() error {
			phonDict, err = e.fetchPronunciations(ctx, words)
			return err
		})
		if err != nil {
			return nil, err
		}
		err = e.stage(ctx, topo, domain.StagePhoneme, g, func() error {
			return PhonemeAcceptor(g, phonDict)
		})
		if err != nil {
			return nil, err
		}
	}

	if req.Depth >= 3 {
		err = e.stage(ctx, topo, domain.StageTriphone, g, func() error {
			return TriphoneAcceptor(g)
		})
		if err != nil {
			return nil, err
		}
	}

	if req.Depth >= 4 {
		err = e.stage(ctx, topo, domain.StageAllophone, g, func() error {
			return AllophoneAcceptor(g, req.AlloNumStates)
		})
		if err != nil {
			return nil, err
		}
	}

	if req.Depth >= 5 {
		err = e.stage(ctx, topo, domain.StageLoops, g, func() error {
			AddLoops(g, 1, g.NumStates-1)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if req.Depth >= 6 {
		var alloMap map[string]int
		err = e.stage(ctx, topo, domain.StageTyingFetch, g, func() error {
			alloMap, err = e.fetchTiedStates(ctx, g)
			return err
		})
		if err != nil {
			return nil, err
		}
		err = e.stage(ctx, topo, domain.StageStateTying, g, func() error {
			return TieStates(g, alloMap, req.LabelConversion)
		})
		if err != nil {
			return nil, err
		}
	}

	if req.Depth > domain.MaxDepth {
		e.logger.WarnContext(ctx, "no depth level higher than 6, extra levels ignored", "depth", req.Depth)
	}
	return g, nil
}

// fetchPronunciations resolves every distinct word once.
func (e *Engine) fetchPronunciations(ctx context.Context, words []string) (map[string][]domain.Pronunciation, error) {
	phonDict := make(map[string][]domain.Pronunciation, len(words))
	for _, w := range words {
		if _, ok := phonDict[w]; ok {
			continue
		}
		prons, err := e.lexicon.Pronunciations(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("lexicon lookup %q: %w", w, err)
		}
		if len(prons) == 0 {
			return nil, fmt.Errorf("%w: %q has no pronunciation", domain.ErrWordNotFound, w)
		}
		phonDict[w] = prons
	}
	return phonDict, nil
}

// fetchTiedStates resolves the canonical allophone string of every edge once.
func (e *Engine) fetchTiedStates(ctx context.Context, g *domain.Graph) (map[string]int, error) {
	alloMap := make(map[string]int)
	for _, edge := range g.Edges {
		if edge.Label.Kind == domain.KindEpsilon {
			continue
		}
		key, err := AlloSyntax(edge.Label, edge.Pos)
		if err != nil {
			return nil, err
		}
		if _, ok := alloMap[key]; ok {
			continue
		}
		id, err := e.tying.TiedState(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("state tying lookup %q: %w", key, err)
		}
		alloMap[key] = id
	}
	return alloMap, nil
}
