package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreUndoesEverythingSinceTheCheckpoint(t *testing.T) {
	// GIVEN a game with an open answered suggestion
	g := newTestGame(t)
	bob, cat := mustPlayer(t, g, "bob"), mustPlayer(t, g, "cat")
	open := &Suggestion{Player: "ann", Suspect: "green", Weapon: "rope", Room: "kitchen"}
	cat.RecordAnsweredSuggestion(open)
	before := g.Snapshot()
	cp := g.Checkpoint()

	// WHEN knowledge of every kind is added
	require.NoError(t, bob.AddCard("plum"))
	require.NoError(t, cat.DoesNotHaveCard("hall"))
	open.Solved = true
	cat.RecordAnsweredSuggestion(&Suggestion{Player: "bob", Suspect: "white", Weapon: "dagger", Room: "study"})
	bob.RecordSuggestionWithNoAnswer(&Suggestion{Player: "bob", Suspect: "peacock", Weapon: "wrench", Room: "lounge"})
	g.AddFailedAccusation(&Accusation{Player: "cat", Suspect: "green", Weapon: "rope", Room: "study"})
	g.AddNotSolution("study")
	for _, p := range g.Players() {
		require.NoError(t, p.DoesNotHaveCard("mustard"))
	}
	require.Equal(t, "mustard", g.SuspectSolution())

	// AND the game is restored
	g.Restore(cp)

	// THEN it is back where it was
	assert.True(t, g.Snapshot().Equal(before))
	assert.True(t, bob.IsUnknownCard("plum"))
	assert.True(t, cat.IsUnknownCard("plum"))
	assert.Equal(t, []*Suggestion{open}, cat.AnsweredSuggestions())
	assert.False(t, open.Solved)
	assert.Empty(t, bob.SuggestionsWithNoAnswer())
	assert.Empty(t, g.Accusations())
	assert.Empty(t, g.NotSolutionCards())
	assert.Equal(t, "", g.SuspectSolution())

	// AND the checkpoint can be restored again
	require.NoError(t, bob.AddCard("plum"))
	g.Restore(cp)
	assert.True(t, bob.IsUnknownCard("plum"))
}
