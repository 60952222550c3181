package sim

import (
	"io"
	"math/rand"
	"slices"
	"testing"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/gamefile"
	"cluedo-detective/internal/inference"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewDeal(t *testing.T) {
	cfg := config.Default()
	deal, err := NewDeal(cfg, []string{"ann", "bob", "cat", "dan"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	t.Run("one envelope card per category", func(t *testing.T) {
		for _, cat := range config.Categories {
			assert.Equal(t, cat, cfg.CardToType[deal.Solution[cat]])
			assert.True(t, deal.IsSolution(deal.Solution[cat]))
			assert.Equal(t, "", deal.Owner(deal.Solution[cat]))
		}
	})

	t.Run("every other card is dealt exactly once", func(t *testing.T) {
		var dealt []string
		for _, name := range deal.Order {
			assert.True(t, slices.IsSorted(deal.Hands[name]))
			for _, card := range deal.Hands[name] {
				assert.Equal(t, name, deal.Owner(card))
			}
			dealt = append(dealt, deal.Hands[name]...)
		}
		assert.Len(t, dealt, 18)
		slices.Sort(dealt)
		assert.Len(t, slices.Compact(dealt), 18)
	})

	t.Run("hands differ in size by at most one", func(t *testing.T) {
		assert.Len(t, deal.Hands["ann"], 5)
		assert.Len(t, deal.Hands["bob"], 5)
		assert.Len(t, deal.Hands["cat"], 4)
		assert.Len(t, deal.Hands["dan"], 4)
	})

	t.Run("too few or too many players", func(t *testing.T) {
		_, err := NewDeal(cfg, []string{"ann"}, rand.New(rand.NewSource(1)))
		assert.Error(t, err)
		many := make([]string, 19)
		_, err = NewDeal(cfg, many, rand.New(rand.NewSource(1)))
		assert.Error(t, err)
	})
}

func TestAnswerWalksTheTable(t *testing.T) {
	cfg := config.Default()
	deal := &Deal{
		Config: cfg,
		Order:  []string{"ann", "bob", "cat"},
		owner:  map[string]string{"green": "ann", "rope": "cat", "hall": "cat"},
	}
	first := func(_ string, options []string) string { return options[0] }

	answerer, shown := deal.Answer("bob", [3]string{"plum", "rope", "hall"}, first)
	assert.Equal(t, "cat", answerer)
	assert.Equal(t, "rope", shown)

	answerer, shown = deal.Answer("cat", [3]string{"green", "rope", "hall"}, first)
	assert.Equal(t, "ann", answerer, "the asker's own cards are never shown")
	assert.Equal(t, "green", shown)

	answerer, _ = deal.Answer("ann", [3]string{"plum", "dagger", "study"}, first)
	assert.Equal(t, "", answerer)
}

func TestBuilderRejectsBadSeating(t *testing.T) {
	cfg := config.Default()
	r := rand.New(rand.NewSource(1))

	_, err := NewBuilder(cfg, quietLogger(), r).WithPlayers(7).Build()
	assert.Error(t, err)

	_, err = NewBuilder(cfg, quietLogger(), r).WithNames("ann", "bob").WithObserver(2).Build()
	assert.Error(t, err)
}

// TestSimulatedGamesAreSound plays many games and checks the observer's notebook against the
// dealt cards after every event.
func TestSimulatedGamesAreSound(t *testing.T) {
	cfg := config.Default()
	for seed := int64(1); seed <= 20; seed++ {
		players := 3 + int(seed%4)
		sim, err := NewBuilder(cfg, quietLogger(), rand.New(rand.NewSource(seed))).
			WithPlayers(players).
			WithObserver(int(seed) % players).
			WithMaxTurns(60).
			WithAccuseRate(0.05).
			WithRevealRate(0.1).
			Build()
		require.NoError(t, err)

		_, err = sim.Run()
		require.NoError(t, err, "seed %d", seed)
		assertSound(t, sim, seed)

		// Replaying the exported file from scratch reaches the same notebook.
		state, evs, err := gamefile.Build(sim.File(), nil, quietLogger())
		require.NoError(t, err)
		engine := inference.NewEngine(state, quietLogger())
		require.NoError(t, engine.Deduce())
		require.NoError(t, engine.ProcessEvents(evs), "seed %d", seed)
		assert.True(t, sim.State().Snapshot().Equal(state.Snapshot()), "seed %d", seed)
	}
}

func assertSound(t *testing.T, sim *Simulation, seed int64) {
	t.Helper()
	snap := sim.State().Snapshot()
	for _, p := range snap.Players {
		hand := sim.Deal.Hands[p.Name]
		for _, card := range p.Held {
			assert.Contains(t, hand, card, "seed %d: %s", seed, p.Name)
		}
		for _, card := range p.Absent {
			assert.NotContains(t, hand, card, "seed %d: %s", seed, p.Name)
		}
	}
	for _, card := range snap.NotSolutionCards {
		assert.False(t, sim.Deal.IsSolution(card), "seed %d: %s", seed, card)
	}
	for i, card := range []string{snap.Solution.Suspect, snap.Solution.Weapon, snap.Solution.Room} {
		if card != "" {
			assert.Equal(t, sim.Deal.Solution[i], card, "seed %d", seed)
		}
	}
}

func TestObserverWinsWithEnoughTurns(t *testing.T) {
	// GIVEN a three-player game where nobody else accuses
	sim, err := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(11))).
		WithNames("ann", "bob", "cat").
		WithChooser(&inference.DeterministicChooser{}).
		WithMaxTurns(300).
		Build()
	require.NoError(t, err)

	// WHEN it is played out
	winner, err := sim.Run()

	// THEN the observer solves it
	require.NoError(t, err)
	assert.Equal(t, "ann", winner)
	assert.True(t, sim.State().IsSolved())
	assert.Equal(t, sim.Deal.Solution, [3]string{
		sim.State().SuspectSolution(), sim.State().WeaponSolution(), sim.State().RoomSolution(),
	})
	assert.Less(t, sim.Turns(), 300)
}

func TestFileExportsTheObserversView(t *testing.T) {
	sim, err := NewBuilder(config.Default(), quietLogger(), rand.New(rand.NewSource(5))).
		WithNames("ann", "bob", "cat").
		WithObserver(1).
		WithMaxTurns(6).
		Build()
	require.NoError(t, err)
	_, err = sim.Run()
	require.NoError(t, err)

	f := sim.File()

	require.Len(t, f.Setup.Players, 3)
	assert.Nil(t, f.Setup.Players[0].Cards)
	require.NotNil(t, f.Setup.Players[1].Cards)
	assert.Nil(t, f.Setup.Players[1].CardCount)
	assert.Equal(t, len(sim.Deal.Hands["cat"]), *f.Setup.Players[2].CardCount)
	assert.Len(t, f.Events, len(sim.Log))
}
