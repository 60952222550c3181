package cli

import (
	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"
	"cluedo-detective/internal/gamefile"
	"cluedo-detective/internal/inference"

	"github.com/sirupsen/logrus"
)

// Solve reads a game file, sets up the notebook and replays every event. When an event fails the
// partially updated state is returned together with the error so it can still be shown.
func Solve(path string, deck *config.GameConfig, log logrus.FieldLogger, listeners ...events.Listener) (*game.GameState, error) {
	f, err := gamefile.Read(path)
	if err != nil {
		return nil, err
	}
	return SolveFile(f, deck, log, listeners...)
}

// SolveFile is Solve for an already decoded file.
func SolveFile(f *gamefile.File, deck *config.GameConfig, log logrus.FieldLogger, listeners ...events.Listener) (*game.GameState, error) {
	manager := events.NewManager()
	for _, l := range listeners {
		manager.Subscribe(l)
	}
	engine, err := replay(f, deck, log, manager)
	if engine == nil {
		return nil, err
	}
	return engine.State(), err
}

// replay builds an engine for f and runs its events. The engine is nil only when setup failed.
func replay(f *gamefile.File, deck *config.GameConfig, log logrus.FieldLogger, manager *events.Manager) (*inference.Engine, error) {
	state, evs, err := gamefile.Build(f, deck, log)
	if err != nil {
		return nil, err
	}
	engine := inference.NewEngine(state, log, inference.WithManager(manager))
	if err := engine.Deduce(); err != nil {
		return engine, err
	}
	return engine, engine.ProcessEvents(evs)
}
