package game

import (
	"fmt"
	"sort"

	"cluedo-detective/internal/config"

	"github.com/sirupsen/logrus"
)

type cardSet map[string]struct{}

func (s cardSet) has(card string) bool {
	_, ok := s[card]
	return ok
}

// Player holds everything known about one player's hand.
type Player struct {
	game      *GameState
	name      string
	cardCount int

	held   [3]cardSet
	absent [3]cardSet

	answeredSuggestions         []*Suggestion
	madeSuggestionsWithNoAnswer []*Suggestion
}

// NewPlayer creates a player with the given hand size. The player belongs to g but is not part of
// the turn order until g.AddPlayer is called.
func NewPlayer(g *GameState, name string, cardCount int) *Player {
	p := &Player{game: g, name: name, cardCount: cardCount}
	for i := range p.held {
		p.held[i] = make(cardSet)
		p.absent[i] = make(cardSet)
	}
	return p
}

func (p *Player) Name() string   { return p.name }
func (p *Player) CardCount() int { return p.cardCount }

// AnsweredSuggestions returns the suggestions this player answered with a card nobody saw.
func (p *Player) AnsweredSuggestions() []*Suggestion { return p.answeredSuggestions }

// SuggestionsWithNoAnswer returns the suggestions this player made that nobody could answer.
func (p *Player) SuggestionsWithNoAnswer() []*Suggestion { return p.madeSuggestionsWithNoAnswer }

// RecordAnsweredSuggestion notes that this player showed an unseen card for s.
func (p *Player) RecordAnsweredSuggestion(s *Suggestion) {
	p.answeredSuggestions = append(p.answeredSuggestions, s)
}

// RecordSuggestionWithNoAnswer notes that nobody could answer s, made by this player.
func (p *Player) RecordSuggestionWithNoAnswer(s *Suggestion) {
	p.madeSuggestionsWithNoAnswer = append(p.madeSuggestionsWithNoAnswer, s)
}

func (p *Player) knownCount() int {
	return len(p.held[config.CategorySuspect]) + len(p.held[config.CategoryWeapon]) + len(p.held[config.CategoryRoom])
}

// HandComplete reports whether every card in the hand is known.
func (p *Player) HandComplete() bool { return p.knownCount() >= p.cardCount }

func (p *Player) classify(card string) (config.CardCategory, error) {
	cat, ok := p.game.cfg.Category(card)
	if !ok {
		return 0, fmt.Errorf("%w: unknown card %q", ErrValidation, card)
	}
	return cat, nil
}

// Holds reports whether the player is known to hold card.
func (p *Player) Holds(card string) bool {
	cat, ok := p.game.cfg.Category(card)
	return ok && p.held[cat].has(card)
}

// LacksCard reports whether the player is known not to hold card.
func (p *Player) LacksCard(card string) bool {
	cat, ok := p.game.cfg.Category(card)
	return ok && p.absent[cat].has(card)
}

// IsUnknownCard is true when it is neither known that the player holds card nor that they lack it.
func (p *Player) IsUnknownCard(card string) bool {
	return !p.Holds(card) && !p.LacksCard(card)
}

// AddCard records that the player holds card. Every other player is marked as not holding it, and
// once the hand is complete every remaining card is marked absent for this player.
func (p *Player) AddCard(card string) error {
	cat, err := p.classify(card)
	if err != nil {
		return err
	}
	if p.held[cat].has(card) {
		return nil
	}
	if p.HandComplete() {
		return fmt.Errorf("%w: %s already has all %d cards known, cannot also hold %s", ErrContradiction, p.name, p.cardCount, card)
	}
	if p.absent[cat].has(card) {
		return fmt.Errorf("%w: %s is known not to hold %s", ErrContradiction, p.name, card)
	}
	for _, other := range p.game.players {
		if other != p && other.Holds(card) {
			return fmt.Errorf("%w: %s is already held by %s", ErrContradiction, card, other.name)
		}
	}

	p.held[cat][card] = struct{}{}
	p.game.log.WithFields(logrus.Fields{"player": p.name, "card": card}).Debugf("Learned that %s holds %s.", p.name, card)

	for _, other := range p.game.players {
		if other != p {
			if err := other.DoesNotHaveCard(card); err != nil {
				return err
			}
		}
	}

	if p.HandComplete() {
		for _, other := range p.game.cfg.AllCards {
			if !p.Holds(other) && !p.LacksCard(other) {
				p.game.log.Debugf("Hit card count, inferring %s does not have %s.", p.name, other)
				if err := p.DoesNotHaveCard(other); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// DoesNotHaveCard records that the player does not hold card. It is idempotent.
func (p *Player) DoesNotHaveCard(card string) error {
	cat, err := p.classify(card)
	if err != nil {
		return err
	}
	if p.held[cat].has(card) {
		return fmt.Errorf("%w: %s is known to hold %s", ErrContradiction, p.name, card)
	}
	p.absent[cat][card] = struct{}{}
	return nil
}

// CanLackSuggestion reports, as a ContradictionError, whether the player holds one of the
// suggested cards.
func (p *Player) CanLackSuggestion(s *Suggestion) error {
	for _, card := range s.Cards() {
		if p.Holds(card) {
			return fmt.Errorf("%w: %s is known to hold %s", ErrContradiction, p.name, card)
		}
	}
	return nil
}

// DoesNotHaveSuggestion marks all three suggested cards as absent. Nothing is recorded if the
// player is known to hold one of them.
func (p *Player) DoesNotHaveSuggestion(s *Suggestion) error {
	for _, card := range s.Cards() {
		if _, err := p.classify(card); err != nil {
			return err
		}
	}
	if err := p.CanLackSuggestion(s); err != nil {
		return err
	}
	for _, card := range s.Cards() {
		if err := p.DoesNotHaveCard(card); err != nil {
			return err
		}
	}
	return nil
}

// KnownCards returns the held cards of one category, sorted.
func (p *Player) KnownCards(cat config.CardCategory) []string { return sortedKeys(p.held[cat]) }

// KnownAbsent returns the absent cards of one category, sorted.
func (p *Player) KnownAbsent(cat config.CardCategory) []string { return sortedKeys(p.absent[cat]) }

// AllKnownCards returns every card the player is known to hold.
func (p *Player) AllKnownCards() []string {
	return unionSorted(p.held[:]...)
}

// AllKnownDoesNotHaveCards returns every card the player is known not to hold.
func (p *Player) AllKnownDoesNotHaveCards() []string {
	return unionSorted(p.absent[:]...)
}

// AllSuggestionsWithNoAnswerCards collects the cards of every suggestion this player made that
// nobody answered.
func (p *Player) AllSuggestionsWithNoAnswerCards() []string {
	set := make(cardSet)
	for _, s := range p.madeSuggestionsWithNoAnswer {
		for _, card := range s.Cards() {
			set[card] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ReviewSuggestionsForInferrableCards resolves answered suggestions. If the player answered
// A B C and is known not to hold B and C, they must hold A.
func (p *Player) ReviewSuggestionsForInferrableCards() (bool, error) {
	var changed bool
	for _, s := range p.answeredSuggestions {
		if s.Solved {
			continue
		}
		var candidates []string
		alreadyHeld := false
		for _, card := range s.Cards() {
			if p.Holds(card) {
				alreadyHeld = true
			}
			if !p.LacksCard(card) {
				candidates = append(candidates, card)
			}
		}
		switch {
		case len(candidates) == 0:
			return changed, fmt.Errorf("%w: %s answered %q but holds none of its cards", ErrContradiction, p.name, s.String())
		case len(candidates) == 1:
			p.game.log.Debugf("Inferring from suggestion that %s has %s.", p.name, candidates[0])
			if err := p.AddCard(candidates[0]); err != nil {
				return changed, err
			}
			s.Solved = true
			changed = true
		case alreadyHeld:
			// The shown card could be any held one; nothing more to learn.
			s.Solved = true
			changed = true
		}
	}
	return changed, nil
}

// UnknownCards returns every card of the deck that is neither held nor absent, in deck order.
func (p *Player) UnknownCards() []string {
	var unknown []string
	for _, card := range p.game.cfg.AllCards {
		if p.IsUnknownCard(card) {
			unknown = append(unknown, card)
		}
	}
	return unknown
}

// CheckNumberOfRemainingAgainstNumberOfUnknown fills the hand when the unknown cards are exactly
// the cards still missing from it.
func (p *Player) CheckNumberOfRemainingAgainstNumberOfUnknown() (bool, error) {
	unknown := p.UnknownCards()
	needed := p.cardCount - p.knownCount()
	switch {
	case len(unknown) == 0:
		return false, nil
	case len(unknown) < needed:
		return false, fmt.Errorf("%w: %s needs %d more cards but only %d are possible", ErrContradiction, p.name, needed, len(unknown))
	case needed == 0:
		for _, card := range unknown {
			if err := p.DoesNotHaveCard(card); err != nil {
				return true, err
			}
		}
		return true, nil
	case len(unknown) == needed:
		p.game.log.Debugf("%s could only have cards: %v", p.name, unknown)
		for _, card := range unknown {
			if err := p.AddCard(card); err != nil {
				return true, err
			}
		}
		return true, nil
	}
	return false, nil
}

func sortedKeys(s cardSet) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func unionSorted(sets ...cardSet) []string {
	all := make(cardSet)
	for _, s := range sets {
		for k := range s {
			all[k] = struct{}{}
		}
	}
	return sortedKeys(all)
}
