package sim

import (
	"fmt"
	"math/rand"
	"strings"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"
	"cluedo-detective/internal/gamefile"
	"cluedo-detective/internal/inference"

	"github.com/sirupsen/logrus"
)

// Simulation plays a game from the point of view of one observer. The observer's notebook is kept
// by an inference.Engine and its suggestions come from an inference.Advisor; the other players
// suggest at random.
type Simulation struct {
	Deal     *Deal
	Observer string
	Log      []events.Event

	state      *game.GameState
	engine     *inference.Engine
	advisor    *inference.Advisor
	chooser    inference.Chooser
	rand       *rand.Rand
	log        logrus.FieldLogger
	maxTurns   int
	accuseRate float64
	revealRate float64
	turn       int
	winner     string
}

// Run plays until the observer's notebook is solved, another player accuses correctly, or the
// turn limit is reached. It returns the winner, which is "" when the game ran out of turns.
func (s *Simulation) Run() (string, error) {
	for s.turn < s.maxTurns && s.winner == "" {
		asker := s.Deal.Order[s.turn%len(s.Deal.Order)]
		s.turn++

		if asker == s.Observer && s.state.IsSolved() {
			s.winner = asker
			s.log.Infof("Turn %d: %s accuses correctly.", s.turn, asker)
			break
		}

		if s.revealRate > 0 && s.rand.Float64() < s.revealRate {
			if err := s.apply(s.randomReveal()); err != nil {
				return "", err
			}
		}

		cards := s.chooseSuggestion(asker)
		answerer, shown := s.Deal.Answer(asker, cards, func(_ string, options []string) string {
			return s.chooser.Choose(options)
		})
		ev := events.SuggestionEvent{Asker: asker, Cards: cards[:], Answerer: answerer}
		if answerer == "" {
			ev.Answerer = game.NobodyName
		} else if asker == s.Observer || answerer == s.Observer {
			ev.Shown = shown
		}
		s.log.Debugf("Turn %d: %s suggests %v, answered by %s.", s.turn, asker, cards, ev.Answerer)
		if err := s.apply(ev); err != nil {
			return "", err
		}

		if asker != s.Observer && s.accuseRate > 0 && s.rand.Float64() < s.accuseRate {
			if s.isSolution(cards) {
				s.winner = asker
				s.log.Infof("Turn %d: %s accuses correctly.", s.turn, asker)
				break
			}
			if err := s.apply(events.AccusationEvent{Accuser: asker, Cards: cards[:]}); err != nil {
				return "", err
			}
		}
	}
	return s.winner, nil
}

// State is the observer's notebook.
func (s *Simulation) State() *game.GameState { return s.state }

// Turns returns how many turns were played.
func (s *Simulation) Turns() int { return s.turn }

func (s *Simulation) apply(ev events.Event) error {
	s.Log = append(s.Log, ev)
	if err := s.engine.ProcessEvent(ev); err != nil {
		return fmt.Errorf("turn %d: %w", s.turn, err)
	}
	return nil
}

func (s *Simulation) chooseSuggestion(asker string) [3]string {
	if asker == s.Observer {
		cards, _ := s.advisor.Suggest(s.state, asker)
		return cards
	}
	var cards [3]string
	for _, cat := range config.Categories {
		list := s.Deal.Config.CardListForCategory(cat)
		cards[cat] = list[s.rand.Intn(len(list))]
	}
	return cards
}

func (s *Simulation) randomReveal() events.RevealEvent {
	name := s.Deal.Order[s.rand.Intn(len(s.Deal.Order))]
	hand := s.Deal.Hands[name]
	if len(hand) == 0 {
		return events.RevealEvent{Player: game.NobodyName, Card: s.Deal.Solution[s.rand.Intn(3)]}
	}
	return events.RevealEvent{Player: name, Card: hand[s.rand.Intn(len(hand))]}
}

func (s *Simulation) isSolution(cards [3]string) bool {
	return cards == s.Deal.Solution
}

// File exports the observer's view of the game as a game file.
func (s *Simulation) File() *gamefile.File {
	cfg := s.Deal.Config
	f := &gamefile.File{
		Setup: gamefile.Setup{
			Cards: &gamefile.Deck{Suspects: cfg.Suspects, Weapons: cfg.Weapons, Rooms: cfg.Rooms},
		},
	}
	for _, name := range s.Deal.Order {
		p := gamefile.Player{Name: name}
		if name == s.Observer {
			hand := strings.Join(s.Deal.Hands[name], " ")
			p.Cards = &hand
		} else {
			count := len(s.Deal.Hands[name])
			p.CardCount = &count
		}
		f.Setup.Players = append(f.Setup.Players, p)
	}
	for _, ev := range s.Log {
		f.Events = append(f.Events, gamefile.FromEvent(ev))
	}
	return f
}
