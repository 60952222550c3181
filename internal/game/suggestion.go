package game

import (
	"fmt"

	"cluedo-detective/internal/config"
)

// Suggestion is a single guess by a player. The cards never change; Solved is set once the engine
// has attributed the suggestion to a specific card.
type Suggestion struct {
	Player  string
	Suspect string
	Weapon  string
	Room    string
	Solved  bool
}

// Accusation has the same shape as a suggestion. Only failed accusations are ever recorded.
type Accusation = Suggestion

// Cards returns the three cards in category order.
func (s *Suggestion) Cards() [3]string {
	return [3]string{s.Suspect, s.Weapon, s.Room}
}

// Card returns the card of the given category.
func (s *Suggestion) Card(cat config.CardCategory) string {
	return s.Cards()[cat]
}

// Contains reports whether card is one of the three suggested cards.
func (s *Suggestion) Contains(card string) bool {
	for _, c := range s.Cards() {
		if c == card {
			return true
		}
	}
	return false
}

func (s *Suggestion) String() string {
	return fmt.Sprintf("%s guesses: %s, %s, %s", s.Player, s.Suspect, s.Weapon, s.Room)
}
