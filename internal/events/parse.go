package events

import (
	"fmt"
	"strings"

	"cluedo-detective/internal/game"
)

// ParseSuggestion reads the "q" and "a" lines of a game log, e.g. "ann green rope kitchen" answered
// by "bob", "bob rope" or "nobody". Card and player names are checked later by the engine.
func ParseSuggestion(q, a string) (SuggestionEvent, error) {
	asker, cards, err := parseGuess(q)
	if err != nil {
		return SuggestionEvent{}, err
	}
	answer := strings.Fields(a)
	ev := SuggestionEvent{Asker: asker, Cards: cards}
	switch len(answer) {
	case 1:
		ev.Answerer = answer[0]
	case 2:
		if answer[0] == game.NobodyName {
			return SuggestionEvent{}, fmt.Errorf("%w: nobody cannot show %s", game.ErrValidation, answer[1])
		}
		ev.Answerer, ev.Shown = answer[0], answer[1]
	default:
		return SuggestionEvent{}, fmt.Errorf("%w: invalid answer %q", game.ErrValidation, a)
	}
	return ev, nil
}

// ParseReveal reads an "r" line: "bob rope" or "nobody rope".
func ParseReveal(r string) (RevealEvent, error) {
	fields := strings.Fields(r)
	if len(fields) != 2 {
		return RevealEvent{}, fmt.Errorf("%w: invalid reveal %q", game.ErrValidation, r)
	}
	return RevealEvent{Player: fields[0], Card: fields[1]}, nil
}

// ParseAccusation reads an "accuse" line, which has the same shape as a suggestion.
func ParseAccusation(line string) (AccusationEvent, error) {
	accuser, cards, err := parseGuess(line)
	if err != nil {
		return AccusationEvent{}, err
	}
	return AccusationEvent{Accuser: accuser, Cards: cards}, nil
}

func parseGuess(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return "", nil, fmt.Errorf("%w: invalid suggestion %q, want a player and three cards", game.ErrValidation, line)
	}
	return fields[0], fields[1:], nil
}

// Format renders an event back into its game-log line(s).
func Format(e Event) map[string]string {
	switch ev := e.(type) {
	case SuggestionEvent:
		a := ev.Answerer
		if ev.Shown != "" {
			a += " " + ev.Shown
		}
		return map[string]string{"q": ev.Asker + " " + strings.Join(ev.Cards, " "), "a": a}
	case RevealEvent:
		return map[string]string{"r": ev.Player + " " + ev.Card}
	case AccusationEvent:
		return map[string]string{"accuse": ev.Accuser + " " + strings.Join(ev.Cards, " ")}
	default:
		return nil
	}
}
