package inference

import (
	"errors"
	"fmt"
	"strings"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"

	"github.com/sirupsen/logrus"
)

// ErrNoConvergence means the deduction loop exceeded its pass bound. The rules only ever add
// knowledge, so this indicates a bug rather than bad input.
var ErrNoConvergence = errors.New("deduction did not converge")

// Deduce runs full passes of every rule until a pass leaves the game's knowledge unchanged.
func (e *Engine) Deduce() error {
	maxPasses := (len(e.state.Players())+1)*len(e.state.AllCards()) + 1
	for pass := 1; pass <= maxPasses; pass++ {
		before := e.state.Snapshot()
		if err := e.runPass(); err != nil {
			return err
		}
		if e.state.Snapshot().Equal(before) {
			e.log.Debugf("Deductions converged after %d pass(es).", pass)
			e.announceSolutions()
			return nil
		}
	}
	return fmt.Errorf("%w after %d passes", ErrNoConvergence, maxPasses)
}

func (e *Engine) runPass() error {
	players := e.state.Players()
	for _, p := range players {
		// e.g. player answered A B C and lacks B and C, so holds A
		if _, err := p.ReviewSuggestionsForInferrableCards(); err != nil {
			return err
		}
	}
	for _, p := range players {
		// e.g. player has one card left and only one card is still possible
		if _, err := p.CheckNumberOfRemainingAgainstNumberOfUnknown(); err != nil {
			return err
		}
	}
	if err := e.inferByUniqueUnknownHolder(); err != nil {
		return err
	}
	if err := e.completeSectionsByElimination(); err != nil {
		return err
	}
	return e.inferByAccusationElimination()
}

// inferByUniqueUnknownHolder places a card once the category's solution is known and only one
// player might still hold it.
//
//	ROOMS:     bob  joe  meg
//	hall       [ ]  [X]  [X]    bob holds the hall,
//	lounge     [ ]  [X]  [X]    and the lounge,
//	kitchen    [X]  [X]  [X]    because the kitchen is the solution.
func (e *Engine) inferByUniqueUnknownHolder() error {
	cfg := e.state.Config()
	for _, cat := range config.Categories {
		if e.state.Solution(cat) == "" {
			continue
		}
		for _, card := range cfg.CardListForCategory(cat) {
			var candidates []*game.Player
			for _, p := range e.state.Players() {
				if p.IsUnknownCard(card) {
					candidates = append(candidates, p)
				}
			}
			if len(candidates) == 1 {
				e.log.WithFields(logrus.Fields{"player": candidates[0].Name(), "card": card, "rule": "unique-holder"}).
					Debugf("Only %s could have %s.", candidates[0].Name(), card)
				if err := candidates[0].AddCard(card); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// completeSectionsByElimination finds a category where every card but one is accounted for; the
// remaining card is in the envelope, so nobody holds it. A category with no room left in the
// envelope, or with two cards nobody holds, is a contradiction.
func (e *Engine) completeSectionsByElimination() error {
	cfg := e.state.Config()
	for _, cat := range config.Categories {
		if cards := e.state.EnvelopeCandidates(cat); len(cards) > 1 {
			return fmt.Errorf("%w: nobody holds %s, but only one %s is in the envelope",
				game.ErrContradiction, strings.Join(cards, " or "), cat.Singular())
		}
		var remaining []string
		for _, card := range cfg.CardListForCategory(cat) {
			if !e.accountedFor(card) {
				remaining = append(remaining, card)
			}
		}
		if len(remaining) == 0 {
			return fmt.Errorf("%w: every %s is accounted for, none is left for the envelope",
				game.ErrContradiction, cat.Singular())
		}
		if len(remaining) != 1 {
			continue
		}
		for _, p := range e.state.Players() {
			if !p.LacksCard(remaining[0]) {
				e.log.WithFields(logrus.Fields{"player": p.Name(), "card": remaining[0], "rule": "section-complete"}).
					Debugf("Only %s is left among the %s, so %s does not have it.", remaining[0], cat, p.Name())
			}
			if err := p.DoesNotHaveCard(remaining[0]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) accountedFor(card string) bool {
	if e.state.IsNotSolution(card) {
		return true
	}
	for _, p := range e.state.Players() {
		if p.Holds(card) {
			return true
		}
	}
	return false
}

// inferByAccusationElimination: if the accusation was A B C and B and C are the solution, A is not.
func (e *Engine) inferByAccusationElimination() error {
	suspect, weapon, room := e.state.SuspectSolution(), e.state.WeaponSolution(), e.state.RoomSolution()
	for _, acc := range e.state.Accusations() {
		var card string
		switch {
		case suspect != "" && weapon != "" && acc.Suspect == suspect && acc.Weapon == weapon:
			card = acc.Room
		case suspect != "" && room != "" && acc.Suspect == suspect && acc.Room == room:
			card = acc.Weapon
		case weapon != "" && room != "" && acc.Weapon == weapon && acc.Room == room:
			card = acc.Suspect
		default:
			continue
		}
		if suspect == card || weapon == card || room == card {
			return fmt.Errorf("%w: accusation %q matches the solution but was recorded as failed", game.ErrContradiction, acc.String())
		}
		if e.state.AddNotSolution(card) {
			e.log.WithFields(logrus.Fields{"card": card, "rule": "accusation"}).
				Debugf("Accusation %q failed, so %s is not the solution.", acc.String(), card)
		}
	}
	return nil
}

func (e *Engine) announceSolutions() {
	for _, cat := range config.Categories {
		if e.known[cat] {
			continue
		}
		if card := e.state.Solution(cat); card != "" {
			e.known[cat] = true
			e.publish(events.SolutionFoundEvent{Category: cat, Card: card})
		}
	}
}
