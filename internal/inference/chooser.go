package inference

import (
	"math/rand"
	"sort"
)

// Chooser picks one card out of several candidates. The advisor and the simulator use it wherever
// a choice is free, so tests can swap in a predictable one.
type Chooser interface {
	Choose(cards []string) string
}

// RandomChooser picks uniformly from its own random source.
type RandomChooser struct {
	rand *rand.Rand
}

func NewRandomChooser(rand *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: rand}
}

func (r *RandomChooser) Choose(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return cards[r.rand.Intn(len(cards))]
}

// DeterministicChooser always picks the alphabetically first card. The input slice is left untouched.
type DeterministicChooser struct{}

func (d *DeterministicChooser) Choose(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	sorted := append([]string(nil), cards...)
	sort.Strings(sorted)
	return sorted[0]
}
