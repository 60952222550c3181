package inference

import (
	"math/rand"
	"slices"
	"testing"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDeal is the hidden truth behind newTestEngine: the envelope holds white, revolver and study.
var testDeal = map[string][]string{
	"ann": annHand,
	"bob": {"green", "mustard", "rope", "wrench", "hall", "kitchen"},
	"cat": {"peacock", "plum", "dagger", "leadpipe", "library", "lounge"},
}

var testOrder = []string{"ann", "bob", "cat"}

// answer plays out a suggestion against testDeal the way the table would.
func answer(asker string, cards []string) events.SuggestionEvent {
	ev := events.SuggestionEvent{Asker: asker, Cards: cards, Answerer: game.NobodyName}
	start := slices.Index(testOrder, asker)
	for i := 1; i < len(testOrder); i++ {
		name := testOrder[(start+i)%len(testOrder)]
		var canShow []string
		for _, card := range cards {
			if slices.Contains(testDeal[name], card) {
				canShow = append(canShow, card)
			}
		}
		if len(canShow) > 0 {
			ev.Answerer = name
			if asker == "ann" || name == "ann" {
				ev.Shown = canShow[0]
			}
			return ev
		}
	}
	return ev
}

func randomSuggestions(seed int64, n int) []events.Event {
	r := rand.New(rand.NewSource(seed))
	cfg := config.Default()
	var evs []events.Event
	for i := 0; i < n; i++ {
		var cards []string
		for _, cat := range config.Categories {
			list := cfg.CardListForCategory(cat)
			cards = append(cards, list[r.Intn(len(list))])
		}
		evs = append(evs, answer(testOrder[i%len(testOrder)], cards))
	}
	return evs
}

func isSubset(a, b []string) bool {
	for _, s := range a {
		if !slices.Contains(b, s) {
			return false
		}
	}
	return true
}

func TestDeductionInvariants(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		e := newTestEngine(t)
		prev := e.State().Snapshot()

		for i, ev := range randomSuggestions(seed, 30) {
			require.NoError(t, e.ProcessEvent(ev), "seed %d event %d", seed, i+1)
			snap := e.State().Snapshot()

			for j, p := range snap.Players {
				// Monotonicity: nothing learned is ever forgotten.
				assert.True(t, isSubset(prev.Players[j].Held, p.Held), "seed %d event %d: %s held shrank", seed, i+1, p.Name)
				assert.True(t, isSubset(prev.Players[j].Absent, p.Absent), "seed %d event %d: %s absent shrank", seed, i+1, p.Name)
				// Disjointness: a card is never both held and absent.
				for _, card := range p.Held {
					assert.NotContains(t, p.Absent, card, "seed %d event %d: %s", seed, i+1, p.Name)
				}
				// Soundness against the hidden deal.
				assert.True(t, isSubset(p.Held, testDeal[p.Name]), "seed %d event %d: %s", seed, i+1, p.Name)
				for _, card := range testDeal[p.Name] {
					assert.NotContains(t, p.Absent, card, "seed %d event %d: %s", seed, i+1, p.Name)
				}
			}
			// Solutions never change once found.
			for _, pair := range [][2]string{
				{prev.Solution.Suspect, snap.Solution.Suspect},
				{prev.Solution.Weapon, snap.Solution.Weapon},
				{prev.Solution.Room, snap.Solution.Room},
			} {
				if pair[0] != "" {
					assert.Equal(t, pair[0], pair[1])
				}
			}
			assert.Contains(t, []string{"", "white"}, snap.Solution.Suspect)
			assert.Contains(t, []string{"", "revolver"}, snap.Solution.Weapon)
			assert.Contains(t, []string{"", "study"}, snap.Solution.Room)

			// Convergence: the state after an event is a fixed point.
			require.NoError(t, e.Deduce())
			assert.True(t, snap.Equal(e.State().Snapshot()), "seed %d event %d: not a fixed point", seed, i+1)

			prev = snap
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	evs := randomSuggestions(42, 40)

	first := newTestEngine(t)
	require.NoError(t, first.ProcessEvents(evs))
	second := newTestEngine(t)
	require.NoError(t, second.ProcessEvents(evs))

	assert.True(t, first.State().Snapshot().Equal(second.State().Snapshot()))
}

func TestIsolatingEachCardSolvesTheGame(t *testing.T) {
	// GIVEN ann pairs every unknown card with two cards from their own hand, so any answer is about it
	e := newTestEngine(t)
	cfg := e.State().Config()
	own := [3]string{"scarlet", "candlestick", "ballroom"}

	// WHEN ann works through the whole deck
	for _, card := range cfg.AllCards {
		if slices.Contains(annHand, card) {
			continue
		}
		cards := own
		cards[cfg.CardToType[card]] = card
		require.NoError(t, e.ProcessEvent(answer("ann", cards[:])))
	}

	// THEN every hand and the envelope are known
	require.True(t, e.State().IsSolved())
	assert.Equal(t, "white", e.State().SuspectSolution())
	assert.Equal(t, "revolver", e.State().WeaponSolution())
	assert.Equal(t, "study", e.State().RoomSolution())
	for _, p := range e.State().Players() {
		assert.ElementsMatch(t, testDeal[p.Name()], p.AllKnownCards(), p.Name())
	}
}
