package game

import (
	"fmt"

	"cluedo-detective/internal/config"

	"github.com/sirupsen/logrus"
)

// PlayerSetup describes one seat at the table. Exactly one seat, the observer's, lists Cards; the
// others give a CardCount.
type PlayerSetup struct {
	Name      string
	Cards     []string
	CardCount *int
}

// Initialize builds a game from the player list. The observer's hand is recorded immediately.
func Initialize(cfg *config.GameConfig, setups []PlayerSetup, logger logrus.FieldLogger) (*GameState, error) {
	g := NewGameState(cfg, logger)

	var self *Player
	var hand []string
	seen := make(map[string]bool)
	for _, s := range setups {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: player without a name", ErrSetup)
		}
		if s.Name == NobodyName {
			return nil, fmt.Errorf("%w: %q is reserved", ErrSetup, NobodyName)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrSetup, s.Name)
		}
		seen[s.Name] = true

		switch {
		case s.Cards != nil:
			if self != nil {
				return nil, fmt.Errorf("%w: both %s and %s list their cards, only the observer may", ErrSetup, self.name, s.Name)
			}
			self = NewPlayer(g, s.Name, len(s.Cards))
			hand = s.Cards
			g.AddPlayer(self)
		case s.CardCount != nil:
			if *s.CardCount < 0 || *s.CardCount > len(g.cfg.AllCards) {
				return nil, fmt.Errorf("%w: %s has an impossible card count %d", ErrSetup, s.Name, *s.CardCount)
			}
			g.AddPlayer(NewPlayer(g, s.Name, *s.CardCount))
		default:
			return nil, fmt.Errorf("%w: %s needs either cards or card_count", ErrSetup, s.Name)
		}
	}
	if self == nil {
		return nil, fmt.Errorf("%w: no player lists their cards", ErrSetup)
	}

	dup := make(map[string]bool)
	for _, card := range hand {
		if _, ok := g.cfg.Category(card); !ok {
			return nil, fmt.Errorf("%w: unknown card %q in %s's hand", ErrValidation, card, self.name)
		}
		if dup[card] {
			return nil, fmt.Errorf("%w: %s listed twice in %s's hand", ErrValidation, card, self.name)
		}
		dup[card] = true
	}
	g.self = self.name
	for _, card := range hand {
		if err := self.AddCard(card); err != nil {
			return nil, err
		}
	}
	g.log.Debugf("Initialized game with %d players, observer %s.", len(g.players), g.self)
	return g, nil
}

// NobodyName is the answerer or revealer meaning "no player".
const NobodyName = "nobody"
