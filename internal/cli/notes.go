package cli

import (
	"fmt"
	"io"
	"strings"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/game"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Hint *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Hint:   color.New(color.FgMagenta),
}

// SuspectColors maps suspect names to specific colors for display.
var SuspectColors = map[string]*color.Color{
	"scarlet": color.New(color.FgRed),
	"mustard": color.New(color.FgYellow),
	"white":   color.New(color.FgWhite),
	"green":   color.New(color.FgGreen),
	"peacock": color.New(color.FgBlue),
	"plum":    color.New(color.FgMagenta),
}

// ColorizeCard returns a card name as a colored string if it's a classic suspect.
func ColorizeCard(name string) string {
	if c, ok := SuspectColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

// RenderNotes writes the notebook grid: one row per card, one column per player, and a column that
// marks envelope cards.
func RenderNotes(w io.Writer, state *game.GameState) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	title := "Detective Notes"
	if self := state.Self(); self != "" {
		title = fmt.Sprintf("%s's Detective Notes", self)
	}
	t.SetTitle(title)

	header := table.Row{"Card", "Type"}
	for _, p := range state.Players() {
		header = append(header, fmt.Sprintf("%s (%d)", p.Name(), p.CardCount()))
	}
	header = append(header, "Solution")
	t.AppendHeader(header)

	cfg := state.Config()
	for i, cat := range config.Categories {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, card := range cfg.CardListForCategory(cat) {
			row := table.Row{ColorizeCard(card), cat.Singular()}
			for _, p := range state.Players() {
				row = append(row, statusToSymbol(state.Status(p, card)))
			}
			if state.IsEnvelopeCard(card) {
				row = append(row, C.Yes.Sprint("✔"))
			} else {
				row = append(row, "")
			}
			t.AppendRow(row)
		}
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.Style().Title.Align = text.AlignCenter
	configs := make([]table.ColumnConfig, 0, len(state.Players())+1)
	for i := range state.Players() {
		configs = append(configs, table.ColumnConfig{Number: i + 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter})
	}
	configs = append(configs, table.ColumnConfig{Number: len(state.Players()) + 3, Align: text.AlignCenter})
	t.SetColumnConfigs(configs)
	t.Render()

	RenderBanner(w, state)
}

// RenderBanner prints the solved/unsolved line under the grid.
func RenderBanner(w io.Writer, state *game.GameState) {
	if state.IsSolved() {
		C.Yes.Fprintf(w, "***SOLVED: %s in the %s with the %s***\n",
			state.SuspectSolution(), state.RoomSolution(), state.WeaponSolution())
		return
	}
	var known []string
	for _, cat := range config.Categories {
		if card := state.Solution(cat); card != "" {
			known = append(known, fmt.Sprintf("%s=%s", cat.Singular(), card))
		}
	}
	if len(known) == 0 {
		C.Info.Fprintln(w, "Unsolved.")
		return
	}
	C.Info.Fprintf(w, "Unsolved. Known so far: %s\n", strings.Join(known, ", "))
}

// RenderLegend explains the grid symbols.
func RenderLegend(w io.Writer) {
	fmt.Fprintf(w, "%s holds  %s does not hold  %s in an unanswered suggestion of theirs  %s not the solution  %s unknown\n",
		statusToSymbol(game.StatusHeld), statusToSymbol(game.StatusAbsent), statusToSymbol(game.StatusNoAnswer),
		statusToSymbol(game.StatusNotSolution), statusToSymbol(game.StatusUnknown))
}

func statusToSymbol(status game.CardStatus) string {
	switch status {
	case game.StatusHeld:
		return C.Yes.Sprint("✔")
	case game.StatusAbsent:
		return C.No.Sprint("✖")
	case game.StatusNoAnswer:
		return C.Maybe.Sprint("⁈")
	case game.StatusNotSolution:
		return C.Hint.Sprint("-")
	default:
		return C.Maybe.Sprint("?")
	}
}
