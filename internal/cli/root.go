package cli

import (
	"fmt"

	"cluedo-detective/internal/config"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string
	DeckPath string
	Format   string // "text" | "json"
	NoColor  bool
	Log      *logrus.Logger
	deck     *config.GameConfig
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Deck returns the deck from --config, or nil to let the game file or the default decide.
func (o *RootOptions) Deck() *config.GameConfig { return o.deck }

// NewRootCommand creates the root command. The logger is configured from the global flags before
// any subcommand runs.
func NewRootCommand(log *logrus.Logger) *cobra.Command {
	opts := &RootOptions{Log: log}

	cmd := &cobra.Command{
		Use:   "cluedo",
		Short: "Cluedo detective notebook",
		Long: `Keeps the detective notebook for a game of Cluedo.

Log every suggestion, answer, revealed card and failed accusation in a game file
(or interactively) and the notebook deduces who holds which card and what is in
the envelope.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.LogLevel)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --loglevel", err)
			}
			opts.Log.SetLevel(level)
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats), nil)
			}
			if opts.NoColor {
				color.NoColor = true
			}
			if opts.DeckPath != "" {
				deck, err := config.Load(opts.DeckPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to load deck", err)
				}
				opts.deck = deck
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "loglevel", "info", "logging level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.DeckPath, "config", "", "JSON file with suspects, weapons and rooms")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewDetectiveCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
