package cli

import (
	"fmt"

	"cluedo-detective/internal/gamefile"

	"github.com/spf13/cobra"
)

// ReplayResult reports a determinism check.
type ReplayResult struct {
	File          string `json:"file"`
	Events        int    `json:"events"`
	Solved        bool   `json:"solved"`
	Deterministic bool   `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay [FILE]",
		Short: "Rebuild the notebook twice and verify the results match",
		Long: `Rebuild the notebook from scratch twice and compare the results.

Exit codes:
  0 - Both runs produced the same notebook
  1 - The runs differ, or the game file is invalid
  2 - Command error`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gameFileArg(args)
			f, err := gamefile.Read(path)
			if err != nil {
				return err
			}
			first, err := SolveFile(f, opts.Deck(), opts.Log)
			if err != nil {
				return err
			}
			second, err := SolveFile(f, opts.Deck(), opts.Log)
			if err != nil {
				return err
			}

			result := ReplayResult{
				File:          path,
				Events:        len(f.Events),
				Solved:        first.IsSolved(),
				Deterministic: first.Snapshot().Equal(second.Snapshot()),
			}
			if opts.Format == "json" {
				if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else if result.Deterministic {
				C.Yes.Fprintf(cmd.OutOrStdout(), "%s: %d events replayed, notebook is deterministic.\n", path, result.Events)
			}
			if !result.Deterministic {
				return WrapExitError(ExitFailure, fmt.Sprintf("%s: replays produced different notebooks", path), nil)
			}
			return nil
		},
	}
}
