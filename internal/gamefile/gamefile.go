// Package gamefile reads and writes the YAML game log: a setup block describing the deck and the
// players, followed by the events of the game in order.
package gamefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// File is the top-level document.
type File struct {
	Setup  Setup   `yaml:"setup"`
	Events []Event `yaml:"events"`
}

// Setup overrides the deck (optional) and lists the players in turn order.
type Setup struct {
	Cards   *Deck    `yaml:"cards,omitempty"`
	Players []Player `yaml:"players"`
}

type Deck struct {
	Suspects []string `yaml:"suspects"`
	Weapons  []string `yaml:"weapons"`
	Rooms    []string `yaml:"rooms"`
}

// Player is one seat. The observer lists Cards as a space separated string; everybody else gives
// CardCount.
type Player struct {
	Name      string  `yaml:"name"`
	Cards     *string `yaml:"cards,omitempty"`
	CardCount *int    `yaml:"card_count,omitempty"`
}

// Event is one log entry. Exactly one of Q (with A), R or Accuse is set.
type Event struct {
	Q      string `yaml:"q,omitempty"`
	A      string `yaml:"a,omitempty"`
	R      string `yaml:"r,omitempty"`
	Accuse string `yaml:"accuse,omitempty"`
}

// Read loads and decodes a game file from disk.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a game file, rejecting unknown keys.
func Decode(r io.Reader) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty game file", game.ErrValidation)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", game.ErrValidation, err)
	}
	if len(f.Setup.Players) == 0 {
		return nil, fmt.Errorf("%w: setup.players is required", game.ErrSetup)
	}
	return &f, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Deck returns the configured deck, or fallback when the file does not override it.
func (f *File) Deck(fallback *config.GameConfig) (*config.GameConfig, error) {
	if f.Setup.Cards == nil {
		if fallback == nil {
			return config.Default(), nil
		}
		return fallback.DeepCopy(), nil
	}
	cfg, err := config.New(f.Setup.Cards.Suspects, f.Setup.Cards.Weapons, f.Setup.Cards.Rooms)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrValidation, err)
	}
	return cfg, nil
}

// PlayerSetups converts the players block for game.Initialize.
func (f *File) PlayerSetups() []game.PlayerSetup {
	setups := make([]game.PlayerSetup, 0, len(f.Setup.Players))
	for _, p := range f.Setup.Players {
		s := game.PlayerSetup{Name: p.Name, CardCount: p.CardCount}
		if p.Cards != nil {
			s.Cards = strings.Fields(*p.Cards)
			if s.Cards == nil {
				s.Cards = []string{}
			}
		}
		setups = append(setups, s)
	}
	return setups
}

// ParseEvents turns the log entries into engine events.
func (f *File) ParseEvents() ([]events.Event, error) {
	evs := make([]events.Event, 0, len(f.Events))
	for i, raw := range f.Events {
		ev, err := raw.Parse()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

// Parse classifies the entry by its keys.
func (e Event) Parse() (events.Event, error) {
	switch {
	case e.Q != "" && e.R == "" && e.Accuse == "":
		if e.A == "" {
			return nil, fmt.Errorf("%w: suggestion %q has no answer", game.ErrValidation, e.Q)
		}
		return events.ParseSuggestion(e.Q, e.A)
	case e.R != "" && e.Q == "" && e.A == "" && e.Accuse == "":
		return events.ParseReveal(e.R)
	case e.Accuse != "" && e.Q == "" && e.A == "" && e.R == "":
		return events.ParseAccusation(e.Accuse)
	default:
		return nil, fmt.Errorf("%w: invalid event %+v", game.ErrValidation, e)
	}
}

// FromEvent converts an engine event back into a log entry.
func FromEvent(ev events.Event) Event {
	lines := events.Format(ev)
	return Event{Q: lines["q"], A: lines["a"], R: lines["r"], Accuse: lines["accuse"]}
}

// Build initializes a game from the file and parses its events. The caller runs the events through
// an inference.Engine.
func Build(f *File, deck *config.GameConfig, logger logrus.FieldLogger) (*game.GameState, []events.Event, error) {
	cfg, err := f.Deck(deck)
	if err != nil {
		return nil, nil, err
	}
	state, err := game.Initialize(cfg, f.PlayerSetups(), logger)
	if err != nil {
		return nil, nil, err
	}
	evs, err := f.ParseEvents()
	if err != nil {
		return nil, nil, err
	}
	return state, evs, nil
}
