package inference

import (
	"fmt"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"

	"github.com/sirupsen/logrus"
)

// Engine feeds turn events into a GameState and drives the deduction rules to a fixed point after
// each one.
type Engine struct {
	state   *game.GameState
	log     logrus.FieldLogger
	manager *events.Manager
	applied int
	known   [3]bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithManager publishes engine notifications on m.
func WithManager(m *events.Manager) Option {
	return func(e *Engine) { e.manager = m }
}

// NewEngine is the constructor for the deduction engine. It injects dependencies.
func NewEngine(state *game.GameState, logger logrus.FieldLogger, opts ...Option) *Engine {
	if logger == nil {
		logger = state.Logger()
	}
	e := &Engine{state: state, log: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() *game.GameState { return e.state }

// ProcessEvents applies events in order and stops at the first failure. Events before the failing
// one remain applied; the failing one leaves no trace.
func (e *Engine) ProcessEvents(evs []events.Event) error {
	for i, ev := range evs {
		if err := e.ProcessEvent(ev); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return nil
}

// ProcessEvent records the raw facts of one event, then deduces until nothing changes. An event
// that fails leaves the game as it was before the event.
func (e *Engine) ProcessEvent(ev events.Event) error {
	cp := e.state.Checkpoint()
	if err := e.apply(ev); err != nil {
		e.state.Restore(cp)
		return err
	}
	e.applied++
	e.publish(events.EventAppliedEvent{Index: e.applied, Event: ev, Solved: e.state.IsSolved()})
	return nil
}

func (e *Engine) apply(ev events.Event) error {
	var err error
	switch event := ev.(type) {
	case events.SuggestionEvent:
		err = e.processSuggestion(event)
	case events.RevealEvent:
		err = e.processReveal(event)
	case events.AccusationEvent:
		err = e.processAccusation(event)
	default:
		err = fmt.Errorf("%w: unsupported event %T", game.ErrValidation, ev)
	}
	if err != nil {
		return err
	}
	return e.Deduce()
}

// ParseSuggestion checks that the player exists and that the cards are one suspect, one weapon and
// one room.
func ParseSuggestion(state *game.GameState, player string, cards []string) (*game.Suggestion, error) {
	if _, err := state.Player(player); err != nil {
		return nil, err
	}
	if len(cards) != 3 {
		return nil, fmt.Errorf("%w: a suggestion needs three cards, got %d", game.ErrValidation, len(cards))
	}
	var slots [3]string
	for _, card := range cards {
		cat, ok := state.CategoryOf(card)
		if !ok {
			return nil, fmt.Errorf("%w: invalid card %q", game.ErrValidation, card)
		}
		if slots[cat] != "" {
			return nil, fmt.Errorf("%w: %s and %s are both %s, include one suspect, one weapon and one room",
				game.ErrValidation, slots[cat], card, cat)
		}
		slots[cat] = card
	}
	return &game.Suggestion{
		Player:  player,
		Suspect: slots[config.CategorySuspect],
		Weapon:  slots[config.CategoryWeapon],
		Room:    slots[config.CategoryRoom],
	}, nil
}

func (e *Engine) processSuggestion(ev events.SuggestionEvent) error {
	suggestion, err := ParseSuggestion(e.state, ev.Asker, ev.Cards)
	if err != nil {
		return err
	}
	e.log.Debugf("Processing suggestion: %s", suggestion)

	if ev.Answerer == game.NobodyName {
		var others []*game.Player
		for _, p := range e.state.Players() {
			if p.Name() != suggestion.Player {
				others = append(others, p)
			}
		}
		if err := lackSuggestion(others, suggestion); err != nil {
			return err
		}
		// The asker may hold any or none of the three cards, so nothing is learned about them.
		asker, _ := e.state.Player(suggestion.Player)
		asker.RecordSuggestionWithNoAnswer(suggestion)
		return nil
	}

	answerer, err := e.state.Player(ev.Answerer)
	if err != nil {
		return err
	}
	if ev.Shown != "" && !suggestion.Contains(ev.Shown) {
		return fmt.Errorf("%w: %s showed %s, which is not part of %q", game.ErrValidation, ev.Answerer, ev.Shown, suggestion.String())
	}

	between := e.playersBetween(suggestion.Player, answerer.Name())
	for _, p := range between {
		e.log.WithField("player", p.Name()).Debugf("%s passed, so does not have %s, %s or %s.",
			p.Name(), suggestion.Suspect, suggestion.Weapon, suggestion.Room)
	}
	if err := lackSuggestion(between, suggestion); err != nil {
		return err
	}

	if ev.Shown != "" {
		e.log.Debugf("Recording that answerer %s has %s.", answerer.Name(), ev.Shown)
		return answerer.AddCard(ev.Shown)
	}
	answerer.RecordAnsweredSuggestion(suggestion)
	return nil
}

// lackSuggestion marks the suggestion absent for every player, after checking that none of them
// holds one of its cards.
func lackSuggestion(players []*game.Player, s *game.Suggestion) error {
	for _, p := range players {
		if err := p.CanLackSuggestion(s); err != nil {
			return err
		}
	}
	for _, p := range players {
		if err := p.DoesNotHaveSuggestion(s); err != nil {
			return err
		}
	}
	return nil
}

// playersBetween returns the players strictly after the asker and before the answerer in turn
// order, wrapping around the table. It is empty when asker and answerer are the same player.
func (e *Engine) playersBetween(asker, answerer string) []*game.Player {
	players := e.state.Players()
	from, to := e.state.PlayerIndex(asker), e.state.PlayerIndex(answerer)
	if from == to {
		return nil
	}
	var between []*game.Player
	for i := (from + 1) % len(players); i != to; i = (i + 1) % len(players) {
		between = append(between, players[i])
	}
	return between
}

func (e *Engine) processReveal(ev events.RevealEvent) error {
	if _, ok := e.state.CategoryOf(ev.Card); !ok {
		return fmt.Errorf("%w: invalid card %q", game.ErrValidation, ev.Card)
	}
	e.log.Debugf("%s has %s", ev.Player, ev.Card)
	if ev.Player == game.NobodyName {
		for _, p := range e.state.Players() {
			if p.Holds(ev.Card) {
				return fmt.Errorf("%w: %s is known to hold %s", game.ErrContradiction, p.Name(), ev.Card)
			}
		}
		for _, p := range e.state.Players() {
			if err := p.DoesNotHaveCard(ev.Card); err != nil {
				return err
			}
		}
		return nil
	}
	p, err := e.state.Player(ev.Player)
	if err != nil {
		return err
	}
	return p.AddCard(ev.Card)
}

func (e *Engine) processAccusation(ev events.AccusationEvent) error {
	acc, err := ParseSuggestion(e.state, ev.Accuser, ev.Cards)
	if err != nil {
		return err
	}
	e.log.Debugf("Recording failed accusation: %s", acc)
	e.state.AddFailedAccusation(acc)
	return nil
}

func (e *Engine) publish(ev events.Event) {
	if e.manager != nil {
		e.manager.Publish(ev)
	}
}
