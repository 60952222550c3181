package game

// Checkpoint is a saved copy of a game's knowledge that Restore can roll back to.
type Checkpoint struct {
	players     []playerCheckpoint
	solved      map[*Suggestion]bool
	accusations int
	notSolution int
	solutions   [3]string
}

type playerCheckpoint struct {
	held     [3]cardSet
	absent   [3]cardSet
	answered int
	noAnswer int
}

func copySets(sets [3]cardSet) [3]cardSet {
	var out [3]cardSet
	for i, s := range sets {
		out[i] = make(cardSet, len(s))
		for card := range s {
			out[i][card] = struct{}{}
		}
	}
	return out
}

// Checkpoint saves the current knowledge. Players must not be added between Checkpoint and Restore.
func (g *GameState) Checkpoint() *Checkpoint {
	cp := &Checkpoint{
		solved:      make(map[*Suggestion]bool),
		accusations: len(g.accusations),
		notSolution: len(g.notSolutionCards),
		solutions:   g.solutions,
	}
	for _, p := range g.players {
		cp.players = append(cp.players, playerCheckpoint{
			held:     copySets(p.held),
			absent:   copySets(p.absent),
			answered: len(p.answeredSuggestions),
			noAnswer: len(p.madeSuggestionsWithNoAnswer),
		})
		for _, s := range p.answeredSuggestions {
			cp.solved[s] = s.Solved
		}
	}
	return cp
}

// Restore discards everything learned since cp was taken.
func (g *GameState) Restore(cp *Checkpoint) {
	for i, p := range g.players {
		saved := cp.players[i]
		p.held = copySets(saved.held)
		p.absent = copySets(saved.absent)
		p.answeredSuggestions = p.answeredSuggestions[:saved.answered]
		p.madeSuggestionsWithNoAnswer = p.madeSuggestionsWithNoAnswer[:saved.noAnswer]
		for _, s := range p.answeredSuggestions {
			s.Solved = cp.solved[s]
		}
	}
	g.accusations = g.accusations[:cp.accusations]
	g.notSolutionCards = g.notSolutionCards[:cp.notSolution]
	g.solutions = cp.solutions
}
