package cli

import (
	"fmt"
	"io"

	"cluedo-detective/internal/game"

	"github.com/spf13/cobra"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [FILE]",
		Short: "Replay a game file once and print the notebook",
		Long: `Replay every event of a game file and print the resulting notebook.

The file defaults to game.yml. With --format json the notebook is printed as a
JSON snapshot instead of a grid.

Exit codes:
  0 - Notebook printed
  1 - The game file is invalid or contradicts itself
  2 - Command error (unreadable file, bad flags)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gameFileArg(args)
			state, err := Solve(path, opts.Deck(), opts.Log)
			if err != nil && state == nil {
				return err
			}
			if werr := printState(cmd.OutOrStdout(), opts, state); werr != nil {
				return werr
			}
			return err
		},
	}
}

func gameFileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "game.yml"
}

func printState(w io.Writer, opts *RootOptions, state *game.GameState) error {
	if opts.Format == "json" {
		return writeJSON(w, state.Snapshot())
	}
	RenderNotes(w, state)
	return nil
}

// printRunError reports a failed run the way the watcher does: the error, then whatever was
// deduced before it.
func printRunError(w io.Writer, err error) {
	C.Warn.Fprintln(w, "waiting for a valid game file")
	fmt.Fprintf(w, "latest error: %v\n", err)
}
