package inference

import (
	"math/rand"
	"testing"

	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdvisor() *Advisor {
	return NewAdvisor(quietLogger(), &DeterministicChooser{})
}

func TestAdvisorExploresWhenNothingIsKnown(t *testing.T) {
	e := newTestEngine(t)

	cards, strategy := newTestAdvisor().Suggest(e.State(), "ann")

	assert.Equal(t, StrategyExplore, strategy)
	// ann's own cards are never proposed while others are open.
	assert.Equal(t, [3]string{"green", "dagger", "hall"}, cards)
}

func TestAdvisorExploitsAKnownSolution(t *testing.T) {
	// GIVEN the suspect is known
	e := newTestEngine(t)
	require.NoError(t, e.ProcessEvent(events.RevealEvent{Player: game.NobodyName, Card: "mustard"}))

	// WHEN the advisor is asked
	cards, strategy := newTestAdvisor().Suggest(e.State(), "ann")

	// THEN it keeps the suspect and tests the rest
	assert.Equal(t, StrategyExploit, strategy)
	assert.Equal(t, [3]string{"mustard", "dagger", "hall"}, cards)
}

func TestAdvisorTargetsUnresolvedAnswers(t *testing.T) {
	// GIVEN cat answered green, rope and kitchen without ann seeing the card
	e := newTestEngine(t)
	require.NoError(t, e.ProcessEvent(events.SuggestionEvent{
		Asker: "ann", Cards: []string{"green", "rope", "kitchen"}, Answerer: "cat",
	}))
	advisor := newTestAdvisor()

	t.Run("it pairs the target with ann's own cards", func(t *testing.T) {
		cards, strategy := advisor.Suggest(e.State(), "ann")
		assert.Equal(t, StrategySurgical, strategy)
		assert.Equal(t, [3]string{"green", "candlestick", "ballroom"}, cards)
	})

	t.Run("it does not repeat a recent target", func(t *testing.T) {
		cards, _ := advisor.Suggest(e.State(), "ann")
		assert.Equal(t, [3]string{"scarlet", "candlestick", "kitchen"}, cards)
	})
}

func TestAdvisorAlwaysSuggestsOneCardPerCategory(t *testing.T) {
	e := newTestEngine(t)
	advisor := NewAdvisor(quietLogger(), NewRandomChooser(rand.New(rand.NewSource(7))))

	for _, ev := range randomSuggestions(7, 20) {
		require.NoError(t, e.ProcessEvent(ev))
		cards, _ := advisor.Suggest(e.State(), "ann")
		_, err := ParseSuggestion(e.State(), "ann", cards[:])
		assert.NoError(t, err)
	}
}

func TestStringDeque(t *testing.T) {
	d := NewStringDeque(3)
	for _, s := range []string{"a", "b", "c", "d"} {
		d.Push(s)
	}

	assert.False(t, d.Contains("a"))
	assert.True(t, d.Contains("b"))
	assert.True(t, d.Contains("d"))
}

func TestSortByValue(t *testing.T) {
	got := sortByValue(map[string]int{"rope": 1, "hall": 3, "green": 1, "plum": 2})
	assert.Equal(t, []string{"hall", "plum", "green", "rope"}, got)
}

func TestChoosers(t *testing.T) {
	t.Run("deterministic picks the first name and leaves the input alone", func(t *testing.T) {
		in := []string{"rope", "dagger", "wrench"}
		assert.Equal(t, "dagger", (&DeterministicChooser{}).Choose(in))
		assert.Equal(t, []string{"rope", "dagger", "wrench"}, in)
	})

	t.Run("random picks one of the candidates", func(t *testing.T) {
		c := NewRandomChooser(rand.New(rand.NewSource(1)))
		assert.Contains(t, []string{"rope", "dagger"}, c.Choose([]string{"rope", "dagger"}))
		assert.Equal(t, "", c.Choose(nil))
	})
}
