package game

import (
	"fmt"

	"cluedo-detective/internal/config"

	"github.com/sirupsen/logrus"
)

// GameState is the observer's notebook for one game: the deck, the players in turn order, and every
// fact learned so far. It is not safe for concurrent use.
type GameState struct {
	cfg              *config.GameConfig
	log              logrus.FieldLogger
	players          []*Player
	accusations      []*Accusation
	notSolutionCards []string
	solutions        [3]string
	self             string
}

// NewGameState creates an empty game over the given deck. A nil cfg selects the default deck.
func NewGameState(cfg *config.GameConfig, logger logrus.FieldLogger) *GameState {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &GameState{cfg: cfg, log: logger}
}

func (g *GameState) Config() *config.GameConfig { return g.cfg }
func (g *GameState) Logger() logrus.FieldLogger { return g.log }
func (g *GameState) Players() []*Player         { return g.players }
func (g *GameState) Accusations() []*Accusation { return g.accusations }

// Self returns the name of the player whose hand was supplied at setup.
func (g *GameState) Self() string { return g.self }

// NotSolutionCards returns the cards known not to be in the envelope whose owner is unknown.
func (g *GameState) NotSolutionCards() []string { return g.notSolutionCards }

// AddPlayer appends p to the turn order.
func (g *GameState) AddPlayer(p *Player) {
	g.players = append(g.players, p)
}

// Player looks a player up by name.
func (g *GameState) Player(name string) (*Player, error) {
	for _, p := range g.players {
		if p.name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid player name %q", ErrNotFound, name)
}

// PlayerIndex returns the turn-order position of the named player, or -1.
func (g *GameState) PlayerIndex(name string) int {
	for i, p := range g.players {
		if p.name == name {
			return i
		}
	}
	return -1
}

// AllCards returns every card in deck order.
func (g *GameState) AllCards() []string { return g.cfg.AllCards }

func (g *GameState) AddFailedAccusation(acc *Accusation) {
	g.accusations = append(g.accusations, acc)
}

// AddNotSolution records a card that is not in the envelope although its owner is unknown.
// It reports whether the card was new.
func (g *GameState) AddNotSolution(card string) bool {
	for _, c := range g.notSolutionCards {
		if c == card {
			return false
		}
	}
	g.notSolutionCards = append(g.notSolutionCards, card)
	return true
}

// IsNotSolution reports whether card was recorded with AddNotSolution.
func (g *GameState) IsNotSolution(card string) bool {
	for _, c := range g.notSolutionCards {
		if c == card {
			return true
		}
	}
	return false
}

// IsEnvelopeCard reports whether every player is known not to hold card.
func (g *GameState) IsEnvelopeCard(card string) bool {
	if len(g.players) == 0 {
		return false
	}
	for _, p := range g.players {
		if !p.LacksCard(card) {
			return false
		}
	}
	return true
}

// EnvelopeCandidates returns the cards of a category that every player is known not to hold.
// Consistent knowledge never yields more than one.
func (g *GameState) EnvelopeCandidates(cat config.CardCategory) []string {
	var cards []string
	for _, card := range g.cfg.CardListForCategory(cat) {
		if g.IsEnvelopeCard(card) {
			cards = append(cards, card)
		}
	}
	return cards
}

// Solution returns the envelope card of a category, or "" while it is unknown or ambiguous. Once
// found the answer is memoised; a category has exactly one solution so it never changes.
func (g *GameState) Solution(cat config.CardCategory) string {
	if g.solutions[cat] == "" {
		if cards := g.EnvelopeCandidates(cat); len(cards) == 1 {
			g.solutions[cat] = cards[0]
			g.log.WithField("category", cat.Singular()).Infof("Solved the %s: %s.", cat.Singular(), cards[0])
		}
	}
	return g.solutions[cat]
}

func (g *GameState) SuspectSolution() string { return g.Solution(config.CategorySuspect) }
func (g *GameState) WeaponSolution() string  { return g.Solution(config.CategoryWeapon) }
func (g *GameState) RoomSolution() string    { return g.Solution(config.CategoryRoom) }

// IsSolved is true once all three envelope cards are known.
func (g *GameState) IsSolved() bool {
	return g.SuspectSolution() != "" && g.WeaponSolution() != "" && g.RoomSolution() != ""
}
