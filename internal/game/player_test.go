package game

import (
	"io"
	"testing"

	"cluedo-detective/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var annHand = []string{"scarlet", "candlestick", "ballroom", "billiard", "conservatory", "dining"}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func count(n int) *int { return &n }

// newTestGame seats ann (the observer, six known cards), bob and cat with six cards each over the
// default deck.
func newTestGame(t *testing.T) *GameState {
	t.Helper()
	g, err := Initialize(nil, []PlayerSetup{
		{Name: "ann", Cards: annHand},
		{Name: "bob", CardCount: count(6)},
		{Name: "cat", CardCount: count(6)},
	}, quietLogger())
	require.NoError(t, err)
	return g
}

func mustPlayer(t *testing.T, g *GameState, name string) *Player {
	t.Helper()
	p, err := g.Player(name)
	require.NoError(t, err)
	return p
}

func TestAddCard(t *testing.T) {
	g := newTestGame(t)
	ann, bob, cat := mustPlayer(t, g, "ann"), mustPlayer(t, g, "bob"), mustPlayer(t, g, "cat")

	t.Run("the observer's hand is held and complete", func(t *testing.T) {
		assert.True(t, ann.HandComplete())
		assert.ElementsMatch(t, annHand, ann.AllKnownCards())
		assert.Len(t, ann.AllKnownDoesNotHaveCards(), 15)
		assert.Empty(t, ann.UnknownCards())
	})

	t.Run("every other player lacks the observer's cards", func(t *testing.T) {
		for _, card := range annHand {
			assert.True(t, bob.LacksCard(card), card)
			assert.True(t, cat.LacksCard(card), card)
		}
	})

	t.Run("adding a card marks it absent for the others", func(t *testing.T) {
		require.NoError(t, bob.AddCard("rope"))

		assert.True(t, bob.Holds("rope"))
		assert.True(t, cat.LacksCard("rope"))
		assert.True(t, ann.LacksCard("rope"))
		assert.Equal(t, []string{"rope"}, bob.KnownCards(config.CategoryWeapon))
	})

	t.Run("adding a held card again is a no-op", func(t *testing.T) {
		assert.NoError(t, bob.AddCard("rope"))
		assert.Len(t, bob.AllKnownCards(), 1)
	})

	t.Run("a card held by someone else is a contradiction", func(t *testing.T) {
		err := cat.AddCard("rope")
		assert.ErrorIs(t, err, ErrContradiction)
		assert.False(t, cat.Holds("rope"))
	})

	t.Run("an unknown card is a validation error", func(t *testing.T) {
		assert.ErrorIs(t, bob.AddCard("bathroom"), ErrValidation)
	})
}

func TestAddCardCompletesHand(t *testing.T) {
	// GIVEN bob with six cards
	g := newTestGame(t)
	bob := mustPlayer(t, g, "bob")
	hand := []string{"green", "mustard", "rope", "wrench", "hall", "kitchen"}

	// WHEN all six become known
	for _, card := range hand {
		require.NoError(t, bob.AddCard(card))
	}

	// THEN every other card is marked absent for bob
	assert.True(t, bob.HandComplete())
	assert.Empty(t, bob.UnknownCards())
	assert.True(t, bob.LacksCard("plum"))
	assert.True(t, bob.LacksCard("study"))

	// AND a seventh card is a contradiction
	assert.ErrorIs(t, bob.AddCard("plum"), ErrContradiction)
}

func TestDoesNotHaveCard(t *testing.T) {
	g := newTestGame(t)
	bob := mustPlayer(t, g, "bob")

	require.NoError(t, bob.DoesNotHaveCard("plum"))
	require.NoError(t, bob.DoesNotHaveCard("plum"))
	assert.True(t, bob.LacksCard("plum"))
	assert.False(t, bob.IsUnknownCard("plum"))

	require.NoError(t, bob.AddCard("white"))
	assert.ErrorIs(t, bob.DoesNotHaveCard("white"), ErrContradiction)
	assert.ErrorIs(t, bob.AddCard("plum"), ErrContradiction)
}

func TestDoesNotHaveSuggestion(t *testing.T) {
	g := newTestGame(t)
	cat := mustPlayer(t, g, "cat")

	require.NoError(t, cat.DoesNotHaveSuggestion(&Suggestion{Player: "ann", Suspect: "plum", Weapon: "rope", Room: "hall"}))

	assert.Equal(t, []string{"hall", "plum", "rope"}, diff(cat.AllKnownDoesNotHaveCards(), annHand))

	t.Run("a held card rejects the whole suggestion", func(t *testing.T) {
		bob := mustPlayer(t, g, "bob")
		require.NoError(t, bob.AddCard("kitchen"))

		err := bob.DoesNotHaveSuggestion(&Suggestion{Player: "ann", Suspect: "green", Weapon: "wrench", Room: "kitchen"})

		assert.ErrorIs(t, err, ErrContradiction)
		assert.True(t, bob.IsUnknownCard("green"))
		assert.True(t, bob.IsUnknownCard("wrench"))
		assert.NoError(t, bob.CanLackSuggestion(&Suggestion{Player: "ann", Suspect: "green", Weapon: "wrench", Room: "hall"}))
	})
}

func TestReviewSuggestionsForInferrableCards(t *testing.T) {
	t.Run("two absent cards leave the third", func(t *testing.T) {
		// GIVEN bob answered green, rope, kitchen without the card being seen
		g := newTestGame(t)
		bob := mustPlayer(t, g, "bob")
		s := &Suggestion{Player: "ann", Suspect: "green", Weapon: "rope", Room: "kitchen"}
		bob.RecordAnsweredSuggestion(s)

		// WHEN bob is known to lack rope and kitchen
		require.NoError(t, bob.DoesNotHaveCard("rope"))
		require.NoError(t, bob.DoesNotHaveCard("kitchen"))
		changed, err := bob.ReviewSuggestionsForInferrableCards()

		// THEN bob must hold green and the suggestion is resolved
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, bob.Holds("green"))
		assert.True(t, s.Solved)

		changed, err = bob.ReviewSuggestionsForInferrableCards()
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("an already held card explains the answer", func(t *testing.T) {
		g := newTestGame(t)
		bob := mustPlayer(t, g, "bob")
		s := &Suggestion{Player: "ann", Suspect: "green", Weapon: "rope", Room: "kitchen"}
		bob.RecordAnsweredSuggestion(s)
		require.NoError(t, bob.AddCard("rope"))

		changed, err := bob.ReviewSuggestionsForInferrableCards()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, s.Solved)
		assert.Equal(t, []string{"rope"}, bob.AllKnownCards())
	})

	t.Run("one absent card is not enough", func(t *testing.T) {
		g := newTestGame(t)
		bob := mustPlayer(t, g, "bob")
		s := &Suggestion{Player: "ann", Suspect: "green", Weapon: "rope", Room: "kitchen"}
		bob.RecordAnsweredSuggestion(s)
		require.NoError(t, bob.DoesNotHaveCard("rope"))

		changed, err := bob.ReviewSuggestionsForInferrableCards()

		require.NoError(t, err)
		assert.False(t, changed)
		assert.False(t, s.Solved)
	})

	t.Run("three absent cards are a contradiction", func(t *testing.T) {
		g := newTestGame(t)
		bob := mustPlayer(t, g, "bob")
		s := &Suggestion{Player: "ann", Suspect: "green", Weapon: "rope", Room: "kitchen"}
		bob.RecordAnsweredSuggestion(s)
		require.NoError(t, bob.DoesNotHaveSuggestion(s))

		_, err := bob.ReviewSuggestionsForInferrableCards()
		assert.ErrorIs(t, err, ErrContradiction)
	})
}

func TestCheckNumberOfRemainingAgainstNumberOfUnknown(t *testing.T) {
	t.Run("unknown cards fill the rest of the hand", func(t *testing.T) {
		// GIVEN bob has six cards and only six unknown cards are left for him
		g := newTestGame(t)
		bob, cat := mustPlayer(t, g, "bob"), mustPlayer(t, g, "cat")
		for _, card := range []string{"green", "mustard", "peacock", "dagger", "leadpipe", "revolver", "hall", "kitchen", "library"} {
			require.NoError(t, bob.DoesNotHaveCard(card))
		}
		require.Len(t, bob.UnknownCards(), 6)

		// WHEN the rule runs
		changed, err := bob.CheckNumberOfRemainingAgainstNumberOfUnknown()

		// THEN bob holds all of them and cat lacks them
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"lounge", "plum", "rope", "study", "white", "wrench"}, bob.AllKnownCards())
		assert.True(t, cat.LacksCard("wrench"))
	})

	t.Run("more unknown cards than needed is inconclusive", func(t *testing.T) {
		g := newTestGame(t)
		changed, err := mustPlayer(t, g, "bob").CheckNumberOfRemainingAgainstNumberOfUnknown()
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("an empty hand lacks every card", func(t *testing.T) {
		g, err := Initialize(nil, []PlayerSetup{
			{Name: "ann", Cards: annHand},
			{Name: "bob", CardCount: count(12)},
			{Name: "dan", CardCount: count(0)},
		}, quietLogger())
		require.NoError(t, err)
		dan := mustPlayer(t, g, "dan")

		changed, err := dan.CheckNumberOfRemainingAgainstNumberOfUnknown()

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Empty(t, dan.UnknownCards())
		assert.Len(t, dan.AllKnownDoesNotHaveCards(), 21)
	})

	t.Run("too few unknown cards is a contradiction", func(t *testing.T) {
		g := newTestGame(t)
		bob := mustPlayer(t, g, "bob")
		for _, card := range []string{"green", "mustard", "peacock", "dagger", "leadpipe", "revolver", "hall", "kitchen", "library", "lounge"} {
			require.NoError(t, bob.DoesNotHaveCard(card))
		}

		_, err := bob.CheckNumberOfRemainingAgainstNumberOfUnknown()
		assert.ErrorIs(t, err, ErrContradiction)
	})
}

func TestAllSuggestionsWithNoAnswerCards(t *testing.T) {
	g := newTestGame(t)
	bob := mustPlayer(t, g, "bob")

	bob.RecordSuggestionWithNoAnswer(&Suggestion{Player: "bob", Suspect: "plum", Weapon: "rope", Room: "hall"})
	bob.RecordSuggestionWithNoAnswer(&Suggestion{Player: "bob", Suspect: "plum", Weapon: "dagger", Room: "hall"})

	assert.Equal(t, []string{"dagger", "hall", "plum", "rope"}, bob.AllSuggestionsWithNoAnswerCards())
	assert.Len(t, bob.SuggestionsWithNoAnswer(), 2)
}

// diff returns the elements of a that are not in b, keeping a's order.
func diff(a, b []string) []string {
	skip := make(map[string]bool, len(b))
	for _, s := range b {
		skip[s] = true
	}
	var out []string
	for _, s := range a {
		if !skip[s] {
			out = append(out, s)
		}
	}
	return out
}
