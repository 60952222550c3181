package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/game"
	"cluedo-detective/internal/inference"

	"github.com/sirupsen/logrus"
)

// Builder provides a step-by-step API for constructing a Simulation.
type Builder struct {
	cfg        *config.GameConfig
	log        logrus.FieldLogger
	rand       *rand.Rand
	chooser    inference.Chooser
	names      []string
	observer   int
	maxTurns   int
	accuseRate float64
	revealRate float64
}

// NewBuilder creates a new Builder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, logger logrus.FieldLogger, rand *rand.Rand) *Builder {
	return &Builder{
		cfg:      cfg,
		log:      logger,
		rand:     rand,
		chooser:  inference.NewRandomChooser(rand),
		maxTurns: 100,
	}
}

// WithPlayers seats n players named after the first n suspects.
func (b *Builder) WithPlayers(n int) *Builder {
	b.names = nil
	for i := 0; i < n && i < len(b.cfg.Suspects); i++ {
		b.names = append(b.names, b.cfg.Suspects[i])
	}
	if n > len(b.cfg.Suspects) {
		b.names = append(b.names, make([]string, n-len(b.cfg.Suspects))...)
	}
	return b
}

// WithNames seats the named players in this turn order.
func (b *Builder) WithNames(names ...string) *Builder {
	b.names = append([]string(nil), names...)
	return b
}

// WithObserver selects whose notebook is kept, by seat index.
func (b *Builder) WithObserver(seat int) *Builder {
	b.observer = seat
	return b
}

func (b *Builder) WithMaxTurns(n int) *Builder {
	b.maxTurns = n
	return b
}

// WithAccuseRate sets how often a non-observer accuses with the suggestion they just made.
func (b *Builder) WithAccuseRate(p float64) *Builder {
	b.accuseRate = p
	return b
}

// WithRevealRate sets how often a card is revealed outside a suggestion.
func (b *Builder) WithRevealRate(p float64) *Builder {
	b.revealRate = p
	return b
}

// WithChooser replaces the random card chooser, e.g. with a DeterministicChooser in tests.
func (b *Builder) WithChooser(c inference.Chooser) *Builder {
	b.chooser = c
	return b
}

// Build deals the cards and prepares the observer's notebook.
func (b *Builder) Build() (*Simulation, error) {
	for _, name := range b.names {
		if name == "" {
			return nil, errors.New("more players than suspects, use WithNames")
		}
	}
	if b.observer < 0 || b.observer >= len(b.names) {
		return nil, fmt.Errorf("observer seat %d out of range", b.observer)
	}
	deal, err := NewDeal(b.cfg, b.names, b.rand)
	if err != nil {
		return nil, err
	}
	observer := b.names[b.observer]

	setups := make([]game.PlayerSetup, 0, len(b.names))
	for _, name := range deal.Order {
		if name == observer {
			setups = append(setups, game.PlayerSetup{Name: name, Cards: append([]string{}, deal.Hands[name]...)})
			continue
		}
		count := len(deal.Hands[name])
		setups = append(setups, game.PlayerSetup{Name: name, CardCount: &count})
	}
	state, err := game.Initialize(b.cfg, setups, b.log)
	if err != nil {
		return nil, err
	}
	b.log.Debugf("Ground truth initialized. Solution: %v", deal.Solution)
	engine := inference.NewEngine(state, b.log)
	if err := engine.Deduce(); err != nil {
		return nil, err
	}

	return &Simulation{
		Deal:       deal,
		Observer:   observer,
		state:      state,
		engine:     engine,
		advisor:    inference.NewAdvisor(b.log, b.chooser),
		chooser:    b.chooser,
		rand:       b.rand,
		log:        b.log,
		maxTurns:   b.maxTurns,
		accuseRate: b.accuseRate,
		revealRate: b.revealRate,
	}, nil
}
