package cli

import (
	"fmt"
	"os"
	"os/signal"

	"cluedo-detective/internal/watch"

	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(opts *RootOptions) *cobra.Command {
	var clearScreen bool
	cmd := &cobra.Command{
		Use:   "watch [FILE]",
		Short: "Re-run the notebook every time the game file is saved",
		Long: `Print the notebook, then rebuild it from scratch every time the game file
changes. Errors are printed and the watcher waits for a corrected file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gameFileArg(args)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			out := cmd.OutOrStdout()
			err := watch.File(ctx, path, opts.Log, func() {
				if clearScreen {
					fmt.Fprint(out, "\033[H\033[2J")
				}
				state, err := Solve(path, opts.Deck(), opts.Log)
				if err != nil {
					printRunError(out, err)
				}
				if state != nil {
					_ = printState(out, opts, state)
				}
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "watch failed", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearScreen, "clear", true, "clear the screen before each run")
	return cmd
}
