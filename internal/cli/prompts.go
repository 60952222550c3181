package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
)

// errAborted is returned by the prompts when the user hits Ctrl-C or Ctrl-D.
var errAborted = errors.New("aborted")

// prompter wraps the line editor. Output that is not part of a prompt goes to out.
type prompter struct {
	line *liner.State
	out  io.Writer
}

func newPrompter(out io.Writer) *prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &prompter{line: line, out: out}
}

func (p *prompter) Close() error { return p.line.Close() }

func (p *prompter) promptForString(prompt string) (string, error) {
	for {
		input, err := p.line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", errAborted
			}
			return "", fmt.Errorf("error reading line: %w", err)
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			p.line.AppendHistory(trimmed)
			return trimmed, nil
		}
	}
}

func (p *prompter) promptForInt(prompt string, min, max int) (int, error) {
	for {
		input, err := p.promptForString(prompt)
		if err != nil {
			return 0, err
		}
		num, err := strconv.Atoi(input)
		if err != nil || num < min || num > max {
			C.Warn.Fprintf(p.out, "Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return num, nil
	}
}

func (p *prompter) promptForSelection(prompt string, options []string) (string, error) {
	for {
		C.Header.Fprintln(p.out, "\n"+prompt)
		for i, opt := range options {
			fmt.Fprintf(p.out, " %2d: %s\n", i+1, ColorizeCard(opt))
		}
		input, err := p.promptForString("Enter number or name: ")
		if err != nil {
			return "", err
		}
		if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(options) {
			return options[num-1], nil
		}
		for _, opt := range options {
			if strings.EqualFold(opt, input) {
				return opt, nil
			}
		}
		C.Warn.Fprintln(p.out, "Invalid selection.")
	}
}

// promptForCards reads card names or numbers from allCards. With exactCount > 0 it stops after that
// many cards; otherwise it reads until "done".
func (p *prompter) promptForCards(allCards []string, requireAtLeastOne bool, exactCount int) ([]string, error) {
	var cards []string
	cardSet := make(map[string]struct{})
	C.Header.Fprintln(p.out, "\n--- Card List ---")
	for i, card := range allCards {
		fmt.Fprintf(p.out, "%2d: %-18s", i+1, card)
		if (i+1)%3 == 0 {
			fmt.Fprintln(p.out)
		}
	}
	fmt.Fprintln(p.out)

	for exactCount == 0 || len(cards) < exactCount {
		prompt := "Enter card name/number (or 'done'): "
		if exactCount > 0 {
			prompt = fmt.Sprintf("Enter card %d of %d: ", len(cards)+1, exactCount)
		}
		input, err := p.promptForString(prompt)
		if err != nil {
			return nil, err
		}
		if exactCount == 0 && strings.EqualFold(input, "done") {
			if requireAtLeastOne && len(cards) == 0 {
				C.Warn.Fprintln(p.out, "Please enter at least one card.")
				continue
			}
			break
		}
		var foundCard string
		if num, err := strconv.Atoi(input); err == nil && num >= 1 && num <= len(allCards) {
			foundCard = allCards[num-1]
		} else {
			for _, card := range allCards {
				if strings.EqualFold(card, input) {
					foundCard = card
					break
				}
			}
		}
		if foundCard == "" {
			C.Warn.Fprintf(p.out, "Error: Card '%s' not found.\n", input)
		} else if _, exists := cardSet[foundCard]; exists {
			C.Warn.Fprintf(p.out, "You have already entered '%s'.\n", foundCard)
		} else {
			cards = append(cards, foundCard)
			cardSet[foundCard] = struct{}{}
			C.Info.Fprintf(p.out, " -> Added: %s\n", ColorizeCard(foundCard))
		}
	}
	return cards, nil
}

func printDetectiveHelp(w io.Writer) {
	C.Header.Fprintln(w, "\n--- Detective Mode Help ---")
	fmt.Fprintln(w, "Log events from your real-life game and the notebook keeps track of everything.")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"log", "l", "Log a suggestion and who answered it."},
		{"reveal", "r", "Log a card seen in a player's hand."},
		{"accuse", "a", "Log a failed accusation."},
		{"suggest", "s", "Ask the advisor what to suggest next."},
		{"notes", "n", "Display the detective notes grid."},
		{"hand", "ha", "Display the cards in your hand."},
		{"save", "w", "Write the game so far to a game file."},
		{"help", "h", "Show this help message."},
		{"quit", "q", "Exit detective mode."},
	})
	t.SetStyle(table.StyleLight)
	t.Render()
}
