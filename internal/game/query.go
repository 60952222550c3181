package game

import (
	"slices"

	"cluedo-detective/internal/config"
)

// CardStatus is what the notebook shows for one player and one card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota
	StatusHeld
	StatusAbsent
	// StatusNoAnswer marks a card from one of the player's own suggestions that nobody answered.
	StatusNoAnswer
	// StatusNotSolution marks a card that is out of the envelope but whose holder is unknown.
	StatusNotSolution
)

func (s CardStatus) String() string {
	return []string{"unknown", "held", "absent", "no-answer", "not-solution"}[s]
}

// Status returns the notebook entry for player and card.
func (g *GameState) Status(p *Player, card string) CardStatus {
	switch {
	case p.Holds(card):
		return StatusHeld
	case p.LacksCard(card):
		return StatusAbsent
	case slices.Contains(p.AllSuggestionsWithNoAnswerCards(), card):
		return StatusNoAnswer
	case g.IsNotSolution(card):
		return StatusNotSolution
	default:
		return StatusUnknown
	}
}

// Snapshot is a structural copy of everything the game knows. Two snapshots of the same game are
// equal exactly when no knowledge was added in between.
type Snapshot struct {
	Players          []PlayerSnapshot `json:"players"`
	NotSolutionCards []string         `json:"not_solution_cards"`
	Solution         SolutionSnapshot `json:"solution"`
	Solved           bool             `json:"solved"`
}

type PlayerSnapshot struct {
	Name             string   `json:"name"`
	CardCount        int      `json:"card_count"`
	Held             []string `json:"held"`
	Absent           []string `json:"absent"`
	OpenSuggestions  int      `json:"open_suggestions"`
	NoAnswerProposed []string `json:"no_answer_cards,omitempty"`
}

type SolutionSnapshot struct {
	Suspect string `json:"suspect,omitempty"`
	Weapon  string `json:"weapon,omitempty"`
	Room    string `json:"room,omitempty"`
}

// Snapshot captures the current knowledge.
func (g *GameState) Snapshot() Snapshot {
	snap := Snapshot{
		NotSolutionCards: append([]string{}, g.notSolutionCards...),
		Solution: SolutionSnapshot{
			Suspect: g.SuspectSolution(),
			Weapon:  g.WeaponSolution(),
			Room:    g.RoomSolution(),
		},
	}
	snap.Solved = snap.Solution.Suspect != "" && snap.Solution.Weapon != "" && snap.Solution.Room != ""
	for _, p := range g.players {
		open := 0
		for _, s := range p.answeredSuggestions {
			if !s.Solved {
				open++
			}
		}
		snap.Players = append(snap.Players, PlayerSnapshot{
			Name:             p.name,
			CardCount:        p.cardCount,
			Held:             p.AllKnownCards(),
			Absent:           p.AllKnownDoesNotHaveCards(),
			OpenSuggestions:  open,
			NoAnswerProposed: p.AllSuggestionsWithNoAnswerCards(),
		})
	}
	return snap
}

// Equal compares two snapshots field by field.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.Players) != len(o.Players) || s.Solution != o.Solution || s.Solved != o.Solved ||
		!slices.Equal(s.NotSolutionCards, o.NotSolutionCards) {
		return false
	}
	for i := range s.Players {
		a, b := s.Players[i], o.Players[i]
		if a.Name != b.Name || a.CardCount != b.CardCount || a.OpenSuggestions != b.OpenSuggestions ||
			!slices.Equal(a.Held, b.Held) || !slices.Equal(a.Absent, b.Absent) ||
			!slices.Equal(a.NoAnswerProposed, b.NoAnswerProposed) {
			return false
		}
	}
	return true
}

// CategoryOf classifies a card against the game's deck.
func (g *GameState) CategoryOf(card string) (config.CardCategory, bool) {
	return g.cfg.Category(card)
}
