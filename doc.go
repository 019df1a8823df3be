/*
Package acceptor builds label-topology finite-state acceptors used as training
targets for sequence models.

Three topology families are supported:

  - ASG: runs of repeated labels are folded into repetition labels, then
    chained with a self-loop on every state but the first.
  - CTC: labels are interleaved with blanks, repeated labels must pass
    through a blank, and the final states are merged into one.
  - HMM: a word sequence is expanded stage by stage into lemma, phoneme,
    triphone, allophone-state and tied-state acceptors. Depth selects how
    many stages run.

Every graph is a node count plus an ordered edge list. State 0 is the start
state and the highest state is the final state; no edge points backwards.

# Collaborators

HMM builds of depth 2 and above look words up in a ports.Lexicon; depth 6
resolves allophones through a ports.StateTying table. Adapters for both live
under pkg/adapters (memory, redis, file).

# Usage

	lex := memory.NewLexicon(map[string][]domain.Pronunciation{
		"cat": {{Phonemes: "k a t"}},
	})
	eng := acceptor.New(acceptor.WithLexicon(lex))

	req := domain.DefaultRequest(domain.TopologyHMM)
	req.Text = "cat"
	req.Depth = 3

	g, err := eng.Build(ctx, req)
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range g.Edges {
		fmt.Println(e)
	}
*/
package acceptor
