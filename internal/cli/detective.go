package cli

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"cluedo-detective/internal/config"
	"cluedo-detective/internal/events"
	"cluedo-detective/internal/game"
	"cluedo-detective/internal/gamefile"
	"cluedo-detective/internal/inference"

	"github.com/spf13/cobra"
)

// NewDetectiveCommand creates the interactive detective command.
func NewDetectiveCommand(opts *RootOptions) *cobra.Command {
	var from, savePath string
	cmd := &cobra.Command{
		Use:   "detective",
		Short: "Keep the notebook interactively during a real game",
		Long: `Start an interactive session for a real game. Enter the players and your hand,
then log every suggestion, revealed card and failed accusation as it happens.

With --from the session resumes from an existing game file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &detective{
				opts:     opts,
				out:      cmd.OutOrStdout(),
				savePath: savePath,
				prompt:   newPrompter(cmd.OutOrStdout()),
			}
			defer d.prompt.Close()
			err := d.run(from)
			if errors.Is(err, errAborted) {
				C.Info.Fprintln(d.out, "\nGoodbye!")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "resume from this game file")
	cmd.Flags().StringVar(&savePath, "save", "game.yml", "file written by the save command")
	return cmd
}

// detective is one interactive session. The game file is the source of truth: every logged event
// is appended to it and the engine is rebuilt from it whenever an event is rejected.
type detective struct {
	opts     *RootOptions
	out      io.Writer
	prompt   *prompter
	savePath string

	file      *gamefile.File
	engine    *inference.Engine
	advisor   *inference.Advisor
	listeners []events.Listener
}

func (d *detective) run(from string) error {
	C.Info.Fprintln(d.out, "\n--- Starting Detective Mode ---")
	if from != "" {
		f, err := gamefile.Read(from)
		if err != nil {
			return err
		}
		d.file = f
	} else {
		f, err := d.promptSetup()
		if err != nil {
			return err
		}
		d.file = f
	}
	d.listeners = []events.Listener{&NotificationRenderer{Out: d.out}}
	if err := d.rebuild(); err != nil {
		return err
	}
	d.advisor = inference.NewAdvisor(d.opts.Log, inference.NewRandomChooser(rand.New(rand.NewSource(time.Now().UnixNano()))))

	C.Info.Fprintln(d.out, "\nDetective Mode is active!")
	d.handleNotesCommand()
	printDetectiveHelp(d.out)

	for {
		input, err := d.prompt.promptForString("(detective) ")
		if err != nil {
			return err
		}
		cmd := strings.ToLower(strings.Fields(input)[0])

		switch cmd {
		case "log", "l":
			err = d.handleLogCommand()
		case "reveal", "r":
			err = d.handleRevealCommand()
		case "accuse", "a":
			err = d.handleAccuseCommand()
		case "suggest", "s":
			d.handleSuggestCommand()
		case "notes", "n":
			d.handleNotesCommand()
		case "hand", "ha":
			d.handleHandCommand()
		case "save", "w":
			err = d.handleSaveCommand()
		case "help", "h":
			printDetectiveHelp(d.out)
		case "quit", "q":
			C.Info.Fprintln(d.out, "Exiting detective mode.")
			return nil
		default:
			C.Warn.Fprintf(d.out, "Unknown command '%s'. Type 'help' for a list of commands.\n", cmd)
		}
		if err != nil {
			return err
		}
	}
}

func (d *detective) deck() *config.GameConfig {
	if deck := d.opts.Deck(); deck != nil {
		return deck
	}
	return config.Default()
}

func (d *detective) state() *game.GameState { return d.engine.State() }

func (d *detective) promptSetup() (*gamefile.File, error) {
	deck := d.deck()
	maxPlayers := len(deck.AllCards) - 3
	if maxPlayers > 6 {
		maxPlayers = 6
	}
	numPlayers, err := d.prompt.promptForInt(fmt.Sprintf("How many players are in the game? (2-%d): ", maxPlayers), 2, maxPlayers)
	if err != nil {
		return nil, err
	}
	var names []string
	for i := 0; i < numPlayers; i++ {
		for {
			name, err := d.prompt.promptForString(fmt.Sprintf("Enter name for Player %d (in turn order): ", i+1))
			if err != nil {
				return nil, err
			}
			if strings.ContainsAny(name, " \t") || strings.EqualFold(name, game.NobodyName) || containsFold(names, name) {
				C.Warn.Fprintln(d.out, "Names must be unique single words and cannot be 'nobody'.")
				continue
			}
			names = append(names, name)
			break
		}
	}
	me, err := d.prompt.promptForSelection("Which player are you?", names)
	if err != nil {
		return nil, err
	}
	C.Info.Fprintln(d.out, "\nSelect the cards in your hand. Type 'done' when finished.")
	hand, err := d.prompt.promptForCards(deck.AllCards, true, 0)
	if err != nil {
		return nil, err
	}
	handLine := strings.Join(hand, " ")

	f := &gamefile.File{}
	if d.opts.Deck() != nil {
		f.Setup.Cards = &gamefile.Deck{Suspects: deck.Suspects, Weapons: deck.Weapons, Rooms: deck.Rooms}
	}
	remaining := len(deck.AllCards) - 3 - len(hand)
	for _, name := range names {
		if name == me {
			f.Setup.Players = append(f.Setup.Players, gamefile.Player{Name: name, Cards: &handLine})
			continue
		}
		count, err := d.prompt.promptForInt(fmt.Sprintf("How many cards does %s hold? (0-%d): ", name, remaining), 0, remaining)
		if err != nil {
			return nil, err
		}
		remaining -= count
		f.Setup.Players = append(f.Setup.Players, gamefile.Player{Name: name, CardCount: &count})
	}
	return f, nil
}

// rebuild replays the whole game file into a fresh engine.
func (d *detective) rebuild() error {
	manager := events.NewManager()
	for _, l := range d.listeners {
		manager.Subscribe(l)
	}
	engine, err := replay(d.file, d.opts.Deck(), d.opts.Log, manager)
	if engine == nil {
		return err
	}
	d.engine = engine
	return err
}

// record applies ev. A rejected event is reported and left out of the game file.
func (d *detective) record(ev events.Event) error {
	err := d.engine.ProcessEvent(ev)
	if err == nil {
		d.file.Events = append(d.file.Events, gamefile.FromEvent(ev))
		C.Info.Fprintln(d.out, "Event logged. Here are your updated notes:")
		d.handleNotesCommand()
		return nil
	}
	if !errors.Is(err, game.ErrValidation) && !errors.Is(err, game.ErrNotFound) && !errors.Is(err, game.ErrContradiction) {
		return err
	}
	C.Warn.Fprintf(d.out, "Event rejected: %v\n", err)
	return nil
}

func (d *detective) playerNames() []string {
	var names []string
	for _, p := range d.state().Players() {
		names = append(names, p.Name())
	}
	return names
}

func (d *detective) promptForGuess() ([]string, error) {
	cfg := d.state().Config()
	var cards []string
	for _, cat := range config.Categories {
		card, err := d.prompt.promptForSelection("Which "+cat.Singular()+"?", cfg.CardListForCategory(cat))
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (d *detective) handleLogCommand() error {
	C.Header.Fprintln(d.out, "\n--- Log a Suggestion ---")
	names := d.playerNames()
	asker, err := d.prompt.promptForSelection("Who made the suggestion?", names)
	if err != nil {
		return err
	}
	cards, err := d.promptForGuess()
	if err != nil {
		return err
	}
	answerer, err := d.prompt.promptForSelection("Who showed a card?", answererOptions(names, asker))
	if err != nil {
		return err
	}

	ev := events.SuggestionEvent{Asker: asker, Cards: cards, Answerer: answerer}
	self := d.state().Self()
	if answerer != game.NobodyName && answerer != asker && (asker == self || answerer == self) {
		shown, err := d.prompt.promptForSelection("Which card was shown?", cards)
		if err != nil {
			return err
		}
		ev.Shown = shown
	}
	return d.record(ev)
}

// answererOptions lists the other players in turn order after the asker, then the asker (who may
// answer their own suggestion), then nobody.
func answererOptions(names []string, asker string) []string {
	var options []string
	for i, name := range names {
		if name == asker {
			options = append(options, names[i+1:]...)
			options = append(options, names[:i]...)
			break
		}
	}
	return append(options, asker, game.NobodyName)
}

func (d *detective) handleRevealCommand() error {
	C.Header.Fprintln(d.out, "\n--- Log a Revealed Card ---")
	who, err := d.prompt.promptForSelection("Whose card was revealed?", append(d.playerNames(), game.NobodyName))
	if err != nil {
		return err
	}
	C.Info.Fprintln(d.out, "Which card was revealed?")
	cards, err := d.prompt.promptForCards(d.state().AllCards(), true, 1)
	if err != nil {
		return err
	}
	return d.record(events.RevealEvent{Player: who, Card: cards[0]})
}

func (d *detective) handleAccuseCommand() error {
	C.Header.Fprintln(d.out, "\n--- Log a Failed Accusation ---")
	accuser, err := d.prompt.promptForSelection("Who made the accusation?", d.playerNames())
	if err != nil {
		return err
	}
	cards, err := d.promptForGuess()
	if err != nil {
		return err
	}
	return d.record(events.AccusationEvent{Accuser: accuser, Cards: cards})
}

func (d *detective) handleSuggestCommand() {
	C.Header.Fprintln(d.out, "\n--- Suggestion Advisor ---")
	if d.state().IsSolved() {
		s := d.state()
		C.Yes.Fprintf(d.out, "Accuse: %s in the %s with the %s.\n",
			ColorizeCard(s.SuspectSolution()), ColorizeCard(s.RoomSolution()), ColorizeCard(s.WeaponSolution()))
		return
	}
	if d.state().Self() == "" {
		C.Warn.Fprintln(d.out, "The game file names no observer, so there is no one to advise.")
		return
	}
	cards, strategy := d.advisor.Suggest(d.state(), d.state().Self())
	var parts []string
	for _, card := range cards {
		parts = append(parts, ColorizeCard(card))
	}
	C.Info.Fprintf(d.out, "Try suggesting: %s ", strings.Join(parts, ", "))
	C.Hint.Fprintf(d.out, "(%s)\n", strategy)
}

func (d *detective) handleNotesCommand() {
	RenderNotes(d.out, d.state())
}

func (d *detective) handleHandCommand() {
	C.Header.Fprintln(d.out, "\n--- Your Hand ---")
	me, err := d.state().Player(d.state().Self())
	if err != nil {
		C.Warn.Fprintln(d.out, "No hand was entered.")
		return
	}
	for _, card := range me.AllKnownCards() {
		C.Info.Fprintln(d.out, " - "+ColorizeCard(card))
	}
}

func (d *detective) handleSaveCommand() error {
	f, err := os.Create(d.savePath)
	if err != nil {
		C.Warn.Fprintf(d.out, "Could not save: %v\n", err)
		return nil
	}
	defer f.Close()
	if err := gamefile.Encode(f, d.file); err != nil {
		C.Warn.Fprintf(d.out, "Could not save: %v\n", err)
		return nil
	}
	C.Info.Fprintf(d.out, "Game saved to %s.\n", d.savePath)
	return nil
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
