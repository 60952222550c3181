package events

import (
	"cluedo-detective/internal/config"
)

// Event is a marker interface for all event types.
type Event interface{}

// Listener defines an interface for any component that wants to react to events.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(e Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Manager (or Event Bus) manages listeners and dispatches events.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}
func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}
func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Turn records fed to the engine ---

// SuggestionEvent is a suggestion and who answered it. Answerer is "nobody" when no one could show
// a card. Shown is only known when the observer saw the card.
type SuggestionEvent struct {
	Asker    string
	Cards    []string
	Answerer string
	Shown    string
}

// RevealEvent is a card seen in a player's hand outside a suggestion. Player "nobody" means the
// card is known to be in no hand.
type RevealEvent struct {
	Player string
	Card   string
}

// AccusationEvent is an accusation that turned out to be wrong.
type AccusationEvent struct {
	Accuser string
	Cards   []string
}

// --- Notifications published by the engine ---

// EventAppliedEvent is published after an event and the deductions that follow it.
type EventAppliedEvent struct {
	Index  int
	Event  Event
	Solved bool
}

// SolutionFoundEvent is published the first time an envelope card becomes known.
type SolutionFoundEvent struct {
	Category config.CardCategory
	Card     string
}
