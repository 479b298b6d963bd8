// Package cli is the line-oriented front-end: a main menu, a move prompt per
// round and running statistics, driven one key press at a time.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rps/internal/game"
	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// Overview is printed once when the loop starts.
const Overview = "Simple CLI rock-paper-scissors game with few variations: Spock-lizard and fire-water."

// MainMenu is the game type prompt.
const MainMenu = `
Choose game type or quit
N|n Rock paper scissors
S|s Rock paper scissors Spock lizard
F|f Rock paper scissors fire water

Q|q Quit
`

// MenuError is returned by ChooseVariant for characters the main menu does
// not know.
type MenuError struct {
	Char rune
}

func (e *MenuError) Error() string {
	return fmt.Sprintf("Unknown character: %c! Please try again", e.Char)
}

// ChooseVariant maps a main menu key to a variant. Q returns rules.ErrQuit.
func ChooseVariant(ch rune) (rules.Variant, error) {
	switch unicode.ToUpper(ch) {
	case 'N':
		return rules.VariantNormal, nil
	case 'S':
		return rules.VariantSpockLizard, nil
	case 'F':
		return rules.VariantFireWater, nil
	case 'Q':
		return rules.VariantNone, rules.ErrQuit
	}
	return rules.VariantNone, &MenuError{Char: ch}
}

// Recorder persists finished rounds and games. *storage.Store satisfies it.
type Recorder interface {
	SaveRound(p storage.Player, r game.Round) (int64, error)
	SaveGame(p storage.Player, v rules.Variant, stats game.Stats) (int64, error)
}

// Options configures a Runner.
type Options struct {
	In   io.Reader
	Out  io.Writer
	Seed int64

	// Variant, when set, skips the first main menu prompt.
	Variant rules.Variant

	// Recorder is optional; nil disables persistence.
	Recorder Recorder
	Player   storage.Player
}

type styles struct {
	overview lipgloss.Style
	menu     lipgloss.Style
	err      lipgloss.Style
	bold     lipgloss.Style
	number   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		overview: r.NewStyle().Foreground(lipgloss.Color("3")),
		menu:     r.NewStyle().Foreground(lipgloss.Color("6")),
		err:      r.NewStyle().Foreground(lipgloss.Color("1")),
		bold:     r.NewStyle().Bold(true),
		number:   r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	}
}

// Runner plays the CLI loop until the player quits or input ends.
type Runner struct {
	opts   Options
	in     charReader
	out    io.Writer
	styles styles
	warned bool
}

// New creates a Runner.
func New(opts Options) *Runner {
	return &Runner{
		opts:   opts,
		in:     newCharReader(opts.In),
		out:    opts.Out,
		styles: newStyles(opts.Out),
	}
}

// Run executes the loop. End of input is treated as quitting.
func (r *Runner) Run() error {
	r.writeLine(r.styles.overview.Render(Overview))
	r.writeLine("")

	next := r.opts.Variant
	for {
		v := next
		next = rules.VariantNone
		if !v.Valid() {
			var err error
			v, err = r.mainMenu()
			if err != nil {
				if errors.Is(err, rules.ErrQuit) || errors.Is(err, io.EOF) {
					r.writeLine("Bye, bye")
					return nil
				}
				return err
			}
		}

		r.writeLine("You choose: " + r.styles.bold.Render(v.DisplayName()))
		r.writeLine("")

		if err := r.playGame(v); err != nil {
			if errors.Is(err, io.EOF) {
				r.writeLine("Bye, bye")
				return nil
			}
			return err
		}
	}
}

func (r *Runner) mainMenu() (rules.Variant, error) {
	r.writeLine(renderLines(r.styles.menu, MainMenu))
	for {
		ch, err := r.in.ReadChar()
		if err != nil {
			return rules.VariantNone, err
		}
		v, err := ChooseVariant(ch)
		var menuErr *MenuError
		if errors.As(err, &menuErr) {
			r.writeLine(r.styles.err.Render(menuErr.Error()))
			continue
		}
		return v, err
	}
}

// playGame runs rounds until Q, then prints the statistics. The statistics
// are printed on end of input as well.
func (r *Runner) playGame(v rules.Variant) error {
	g := game.New(v, r.opts.Seed)
	defer r.finishGame(g)

	for {
		m, err := r.readMove(v)
		if errors.Is(err, rules.ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		round := g.Play(m)
		r.record(round)

		message := round.Outcome.Message()
		if round.Outcome == rules.Draw {
			message = "Nobody wins !!!"
		}

		r.writeLine("")
		r.writeLine(fmt.Sprintf("You choose %s, and computer choose %s",
			r.styles.bold.Render(round.Player.String()),
			r.styles.bold.Render(round.Computer.String())))
		r.writeLine(r.styles.bold.Render(message))
		r.writeLine(r.styles.bold.Render(round.Phrase))
	}
}

func (r *Runner) readMove(v rules.Variant) (rules.Move, error) {
	r.writeLine(renderLines(r.styles.menu, v.MoveMenu()))
	for {
		ch, err := r.in.ReadChar()
		if err != nil {
			return rules.MoveNone, err
		}
		m, err := rules.ParseMove(v, ch)
		var inputErr *rules.InputError
		if errors.As(err, &inputErr) {
			r.writeLine(r.styles.err.Render(inputErr.Message))
			continue
		}
		return m, err
	}
}

func (r *Runner) finishGame(g *game.Game) {
	stats := g.Stats()
	r.writeLine("")
	r.writeLine(r.styles.bold.Render("Game statistics:"))
	r.writeLine(fmt.Sprintf("Total games: %s, wins: %s, loses: %s, ties: %s",
		r.styles.number.Render(fmt.Sprint(stats.Total())),
		r.styles.number.Render(fmt.Sprint(stats.Wins)),
		r.styles.number.Render(fmt.Sprint(stats.Loses)),
		r.styles.number.Render(fmt.Sprint(stats.Draws))))

	if r.opts.Recorder != nil {
		if _, err := r.opts.Recorder.SaveGame(r.opts.Player, g.Variant(), stats); err != nil {
			r.warn(err)
		}
	}
}

func (r *Runner) record(round game.Round) {
	if r.opts.Recorder == nil {
		return
	}
	if _, err := r.opts.Recorder.SaveRound(r.opts.Player, round); err != nil {
		r.warn(err)
	}
}

// warn reports the first storage failure and keeps playing without
// interrupting the game.
func (r *Runner) warn(err error) {
	if r.warned {
		return
	}
	r.warned = true
	r.writeLine(r.styles.err.Render("Warning: " + err.Error()))
}

func (r *Runner) writeLine(s string) {
	//nolint:errcheck // Terminal writes are best effort
	io.WriteString(r.out, s+"\n")
}

// renderLines styles each line on its own so multi-line prompts are not
// padded to a common width.
func renderLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
