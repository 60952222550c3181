package sim

import (
	"errors"
	"math/rand"
	"sort"

	"cluedo-detective/internal/config"
)

// Deal is the ground truth of a simulated game.
type Deal struct {
	Config   *config.GameConfig
	Order    []string
	Hands    map[string][]string
	Solution [3]string
	owner    map[string]string
}

// NewDeal draws one envelope card per category and deals the rest round-robin in turn order.
func NewDeal(cfg *config.GameConfig, players []string, rand *rand.Rand) (*Deal, error) {
	if len(players) < 2 || len(players) > len(cfg.AllCards)-3 {
		return nil, errors.New("invalid number of players")
	}
	d := &Deal{
		Config: cfg,
		Order:  append([]string(nil), players...),
		Hands:  make(map[string][]string, len(players)),
		owner:  make(map[string]string),
	}

	deck := append([]string(nil), cfg.AllCards...)
	rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	var dealt [3]bool
	var cardsToDeal []string
	for i := len(deck) - 1; i >= 0; i-- {
		card := deck[i]
		cat := cfg.CardToType[card]
		if !dealt[cat] {
			d.Solution[cat] = card
			dealt[cat] = true
		} else {
			cardsToDeal = append(cardsToDeal, card)
		}
	}
	rand.Shuffle(len(cardsToDeal), func(i, j int) { cardsToDeal[i], cardsToDeal[j] = cardsToDeal[j], cardsToDeal[i] })

	for i, card := range cardsToDeal {
		name := d.Order[i%len(d.Order)]
		d.Hands[name] = append(d.Hands[name], card)
		d.owner[card] = name
	}
	for _, name := range d.Order {
		sort.Strings(d.Hands[name])
	}
	return d, nil
}

// Owner returns who holds card, or "" for an envelope card.
func (d *Deal) Owner(card string) string { return d.owner[card] }

// IsSolution reports whether card is in the envelope.
func (d *Deal) IsSolution(card string) bool {
	for _, c := range d.Solution {
		if c == card {
			return true
		}
	}
	return false
}

// Answer walks the table from the asker and returns the first player able to show one of cards,
// together with the card they choose. The answerer is "" when nobody can.
func (d *Deal) Answer(asker string, cards [3]string, choose func(player string, options []string) string) (string, string) {
	askerIdx := -1
	for i, name := range d.Order {
		if name == asker {
			askerIdx = i
			break
		}
	}
	for i := 1; i < len(d.Order); i++ {
		name := d.Order[(askerIdx+i)%len(d.Order)]
		var canShow []string
		for _, card := range cards {
			if d.owner[card] == name {
				canShow = append(canShow, card)
			}
		}
		if len(canShow) > 0 {
			return name, choose(name, canShow)
		}
	}
	return "", ""
}
