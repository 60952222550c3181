package cli

import (
	"io"

	"cluedo-detective/internal/events"
)

// NotificationRenderer implements the events.Listener interface to announce engine progress.
type NotificationRenderer struct {
	Out io.Writer
}

// HandleEvent is the central dispatcher for rendering events.
func (r *NotificationRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.SolutionFoundEvent:
		C.Yes.Fprintf(r.Out, "-> The %s is %s!\n", event.Category.Singular(), ColorizeCard(event.Card))
	case events.EventAppliedEvent:
		if event.Solved {
			C.Header.Fprintf(r.Out, "-> Solved after event %d.\n", event.Index)
		}
	}
}
