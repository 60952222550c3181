package cli

import (
	"math/rand"
	"os"
	"time"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/gamefile"
	"cluedo-detective/internal/sim"

	"github.com/spf13/cobra"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Players    int
	Seed       int64
	MaxTurns   int
	AccuseRate float64
	RevealRate float64
	Output     string
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a random game and write the observer's game file",
		Long: `Deal a random game, play it with the first player as the observer, and write
the observer's log as a game file that solve, watch and replay accept.

Examples:
  cluedo simulate --players 4 --seed 7 -o game.yml
  cluedo simulate --accuse-rate 0.1 | cluedo solve /dev/stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}
	cmd.Flags().IntVar(&opts.Players, "players", 4, "number of players (2-6 with the default deck)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&opts.MaxTurns, "turns", 100, "turn limit")
	cmd.Flags().Float64Var(&opts.AccuseRate, "accuse-rate", 0, "chance that a player accuses after suggesting")
	cmd.Flags().Float64Var(&opts.RevealRate, "reveal-rate", 0, "chance of a card being revealed each turn")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the game file here instead of stdout")
	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	deck := opts.Deck()
	if deck == nil {
		deck = config.Default()
	}
	simulation, err := sim.NewBuilder(deck, opts.Log, rand.New(rand.NewSource(seed))).
		WithPlayers(opts.Players).
		WithMaxTurns(opts.MaxTurns).
		WithAccuseRate(opts.AccuseRate).
		WithRevealRate(opts.RevealRate).
		Build()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build simulation", err)
	}
	winner, err := simulation.Run()
	if err != nil {
		return WrapExitError(ExitFailure, "simulation failed", err)
	}
	opts.Log.WithField("seed", seed).Infof("Simulated %d turns, winner %q, solution %v.",
		simulation.Turns(), winner, simulation.Deal.Solution)

	out := cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		out = f
	}
	return gamefile.Encode(out, simulation.File())
}
