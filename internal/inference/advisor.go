package inference

import (
	"sort"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/game"

	"github.com/sirupsen/logrus"
)

// Strategy names the reasoning behind an advised suggestion.
type Strategy string

const (
	StrategyExploit  Strategy = "exploit"
	StrategySurgical Strategy = "surgical"
	StrategyExplore  Strategy = "explore"
)

// Advisor proposes the observer's next suggestion from what the notebook already knows.
type Advisor struct {
	log           logrus.FieldLogger
	chooser       Chooser
	recentTargets *StringDeque
	strategyOrder []Strategy
}

func NewAdvisor(logger logrus.FieldLogger, chooser Chooser) *Advisor {
	return &Advisor{
		log:           logger,
		chooser:       chooser,
		recentTargets: NewStringDeque(3),
		strategyOrder: []Strategy{StrategyExploit, StrategySurgical, StrategyExplore},
	}
}

// Suggest returns a suspect, weapon and room for asker to suggest, in category order.
func (a *Advisor) Suggest(state *game.GameState, asker string) ([3]string, Strategy) {
	for _, s := range a.strategyOrder {
		var (
			cards [3]string
			ok    bool
		)
		switch s {
		case StrategyExploit:
			cards, ok = a.exploit(state, asker)
		case StrategySurgical:
			cards, ok = a.surgical(state, asker)
		case StrategyExplore:
			cards, ok = a.explore(state, asker), true
		}
		if ok {
			return cards, s
		}
	}
	return a.explore(state, asker), StrategyExplore
}

// exploit keeps the known envelope cards and tests the rest.
func (a *Advisor) exploit(state *game.GameState, asker string) ([3]string, bool) {
	var cards [3]string
	known := 0
	for _, cat := range config.Categories {
		if card := state.Solution(cat); card != "" {
			cards[cat] = card
			known++
		}
	}
	if known == 0 || known == 3 {
		return cards, false
	}
	a.log.Debugf("Strategy: EXPLOIT. %d/3 of the solution is known.", known)
	for _, cat := range config.Categories {
		if cards[cat] == "" {
			cards[cat] = a.pickUnknownCard(state, asker, cat)
		}
	}
	return cards, true
}

// surgical targets the card that appears most often in unresolved answers.
func (a *Advisor) surgical(state *game.GameState, asker string) ([3]string, bool) {
	frequency := make(map[string]int)
	for _, p := range state.Players() {
		if p.Name() == asker {
			continue
		}
		for _, s := range p.AnsweredSuggestions() {
			if s.Solved {
				continue
			}
			for _, card := range s.Cards() {
				if p.IsUnknownCard(card) {
					frequency[card]++
				}
			}
		}
	}
	if len(frequency) == 0 {
		return [3]string{}, false
	}

	sorted := sortByValue(frequency)
	var fresh []string
	for _, card := range sorted {
		if !a.recentTargets.Contains(card) {
			fresh = append(fresh, card)
		}
	}
	if len(fresh) == 0 {
		fresh = sorted
	}
	// Only the most frequent cards are candidates.
	top := frequency[fresh[0]]
	var targets []string
	for _, card := range fresh {
		if frequency[card] == top {
			targets = append(targets, card)
		}
	}
	target := a.chooser.Choose(targets)
	a.recentTargets.Push(target)
	a.log.Debugf("Strategy: SURGICAL STRIKE. Targeting %s.", target)
	return a.buildAroundTarget(state, asker, target), true
}

func (a *Advisor) explore(state *game.GameState, asker string) [3]string {
	a.log.Debugf("Strategy: EXPLORE. Gathering new information.")
	var cards [3]string
	for _, cat := range config.Categories {
		cards[cat] = a.pickUnknownCard(state, asker, cat)
	}
	return cards
}

// pickUnknownCard prefers cards that might still be the solution and that asker does not hold.
func (a *Advisor) pickUnknownCard(state *game.GameState, asker string, cat config.CardCategory) string {
	self, _ := state.Player(asker)
	list := state.Config().CardListForCategory(cat)
	var open, notMine []string
	for _, card := range list {
		if self != nil && self.Holds(card) {
			continue
		}
		notMine = append(notMine, card)
		if !state.IsEnvelopeCard(card) && !state.IsNotSolution(card) && !heldByAnyone(state, card) {
			open = append(open, card)
		}
	}
	switch {
	case len(open) > 0:
		return a.chooser.Choose(open)
	case len(notMine) > 0:
		return a.chooser.Choose(notMine)
	default:
		return a.chooser.Choose(list)
	}
}

// buildAroundTarget pairs the target with cards from asker's own hand so that any answer is about
// the target.
func (a *Advisor) buildAroundTarget(state *game.GameState, asker, target string) [3]string {
	var cards [3]string
	targetCat, _ := state.CategoryOf(target)
	cards[targetCat] = target
	self, _ := state.Player(asker)
	for _, cat := range config.Categories {
		if cards[cat] != "" {
			continue
		}
		if self != nil {
			if own := self.KnownCards(cat); len(own) > 0 {
				cards[cat] = a.chooser.Choose(own)
				continue
			}
		}
		cards[cat] = a.pickUnknownCard(state, asker, cat)
	}
	return cards
}

func heldByAnyone(state *game.GameState, card string) bool {
	for _, p := range state.Players() {
		if p.Holds(card) {
			return true
		}
	}
	return false
}

// --- Utility Types and Functions ---

// StringDeque remembers the last few targets so the advisor does not hammer the same card.
type StringDeque struct {
	elements []string
	maxSize  int
}

func NewStringDeque(maxSize int) *StringDeque {
	return &StringDeque{maxSize: maxSize}
}
func (d *StringDeque) Push(s string) {
	d.elements = append(d.elements, s)
	if len(d.elements) > d.maxSize {
		d.elements = d.elements[1:]
	}
}
func (d *StringDeque) Contains(s string) bool {
	for _, e := range d.elements {
		if e == s {
			return true
		}
	}
	return false
}

// sortByValue orders keys by descending count, ties alphabetically.
func sortByValue(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
