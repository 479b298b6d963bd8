package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/game"
	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// revealTicks is the length of the countdown before the computer's move is shown.
const revealTicks = 3

type gamePhase int

const (
	phasePick   gamePhase = iota // Choosing a move
	phaseReveal                  // Countdown running
	phaseResult                  // Round result shown
)

// GameModel is a single-player game against the computer.
type GameModel struct {
	game      *game.Game
	store     *storage.Store
	player    storage.Player
	keyMapper *KeyMapper
	keys      gameKeyMap
	help      help.Model
	interval  time.Duration
	sound     bool
	bell      io.Writer
	width     int
	height    int

	phase     gamePhase
	cursor    int // Selected slot, 1..MaxSlots
	countdown int
	tag       int
	pending   rules.Move
	last      game.Round
	notice    string

	finished bool
	quitting bool
}

// NewGameModel creates a game of variant v. store may be nil; bell receives
// the terminal bell when cfg.Sound is on.
func NewGameModel(v rules.Variant, cfg core.RuntimeConfig, store *storage.Store, player storage.Player, bell io.Writer) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:      game.New(v, cfg.EffectiveSeed()),
		store:     store,
		player:    player,
		keyMapper: NewKeyMapper(),
		keys:      newGameKeyMap(v, "finish"),
		help:      h,
		interval:  cfg.TickInterval(),
		sound:     cfg.Sound,
		bell:      bell,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		cursor:    1,
	}
}

// Init initializes the game.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, nil
	}

	switch m.phase {
	case phaseReveal:
		if msg.String() == "esc" {
			m.tag++ // Drop the running countdown
			m.finish()
		}
		return m, nil

	case phaseResult:
		switch msg.String() {
		case "c", "C", "enter", " ":
			m.phase = phasePick
		case "f", "F", "q", "Q", "esc":
			m.finish()
		}
		return m, nil
	}

	v := m.game.Variant()
	intent := m.keyMapper.MapGameKey(msg, v)
	switch intent.Action {
	case core.ActionLeft:
		m.cursor = core.Clamp(m.cursor-1, 1, v.MaxSlots())
		m.notice = ""
	case core.ActionRight:
		m.cursor = core.Clamp(m.cursor+1, 1, v.MaxSlots())
		m.notice = ""
	case core.ActionSelect:
		m.cursor = intent.Slot
		m.notice = ""
	case core.ActionConfirm:
		return m.startReveal()
	case core.ActionRestart:
		m.saveGame()
		m.game.Reset()
		m.last = game.Round{}
		m.notice = "Score reset"
	case core.ActionBack, core.ActionQuit:
		m.finish()
	case core.ActionNone:
		var inputErr *rules.InputError
		if errors.As(intent.Err, &inputErr) {
			m.notice = inputErr.Message
		}
	}
	return m, nil
}

func (m GameModel) startReveal() (tea.Model, tea.Cmd) {
	mv, ok := m.game.Variant().SlotToMove(m.cursor)
	if !ok {
		return m, nil
	}
	m.pending = mv
	m.phase = phaseReveal
	m.countdown = revealTicks
	m.tag++
	m.notice = ""
	return m, tickCmd(m.interval, m.tag)
}

func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if m.phase != phaseReveal || msg.Tag != m.tag {
		return m, nil
	}
	m.countdown--
	if m.countdown > 0 {
		return m, tickCmd(m.interval, m.tag)
	}

	m.last = m.game.Play(m.pending)
	m.phase = phaseResult
	if m.store != nil {
		if _, err := m.store.SaveRound(m.player, m.last); err != nil {
			m.notice = "Round not saved: " + err.Error()
		}
	}
	if m.sound {
		return m, bellCmd(m.bell)
	}
	return m, nil
}

// finish ends the game and stores the rounds played since the last reset.
func (m *GameModel) finish() {
	m.finished = true
	m.saveGame()
}

// saveGame stores the running totals as one game. A reset closes the running game.
func (m *GameModel) saveGame() {
	if m.store == nil || m.game.Stats().Total() == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the overview is shown regardless
	m.store.SaveGame(m.player, m.game.Variant(), m.game.Stats())
}

// bellCmd writes the terminal bell to w.
func bellCmd(w io.Writer) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		//nolint:errcheck // A missed bell is harmless
		io.WriteString(w, "\a")
		return nil
	}
}

// View renders the game.
func (m GameModel) View() string {
	v := m.game.Variant()
	var b strings.Builder

	b.WriteString(titleStyle.Render(v.DisplayName()))
	b.WriteString("\n\n")

	a := arena{LeftLabel: "You", RightLabel: "Computer"}
	switch m.phase {
	case phasePick:
		a.Left, _ = v.SlotToMove(m.cursor)
	case phaseReveal:
		a.Left = m.pending
		a.Countdown = m.countdown
	case phaseResult:
		a.Left, a.Right, a.Outcome = m.last.Player, m.last.Computer, m.last.Outcome
	}
	b.WriteString(RenderScreen(drawArena(min(m.width, 60), a)))
	b.WriteString("\n")

	switch m.phase {
	case phaseResult:
		b.WriteString(renderRoundResult("computer", m.last.Player, m.last.Computer, m.last.Outcome, m.last.Phrase))
		b.WriteString("\n")
		b.WriteString(renderStats(m.game.Stats()))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			buttonStyle.Render("(C)ontinue"), "  ", buttonStyle.Render("(F)inish")))
	default:
		b.WriteString(renderSlots(v, m.cursor))
		b.WriteString("\n\n")
		b.WriteString(renderStats(m.game.Stats()))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
	}

	return center(m.width, m.height, b.String())
}

// renderSlots draws the move picker row.
func renderSlots(v rules.Variant, cursor int) string {
	cells := make([]string, 0, v.MaxSlots())
	for slot := 1; slot <= v.MaxSlots(); slot++ {
		mv, _ := v.SlotToMove(slot)
		label := fmt.Sprintf("%d %s", slot, mv)
		if slot == cursor {
			cells = append(cells, selectedItemStyle.Render(label))
		} else {
			cells = append(cells, itemStyle.Padding(0, 1).Render(label))
		}
	}
	return strings.Join(cells, " ")
}

// renderRoundResult prints the moves, the outcome and the phrase.
func renderRoundResult(opponent string, mine, theirs rules.Move, o rules.Outcome, phrase string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You choose %s, and %s choose %s\n", mine, opponent, theirs)
	b.WriteString(colorStyles[core.OutcomeColor(o)].Render(o.Message()))
	if phrase != "" {
		b.WriteString("\n")
		b.WriteString(phrase)
	}
	return b.String()
}

func renderStats(s game.Stats) string {
	return helpStyle.Render(fmt.Sprintf("Wins: %d, Loses: %d, Draws: %d", s.Wins, s.Loses, s.Draws))
}

// Finished reports whether the player left the game.
func (m GameModel) Finished() bool {
	return m.finished
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Stats returns the running statistics.
func (m GameModel) Stats() game.Stats {
	return m.game.Stats()
}

// Variant returns the variant being played.
func (m GameModel) Variant() rules.Variant {
	return m.game.Variant()
}

// Cursor returns the selected slot.
func (m GameModel) Cursor() int {
	return m.cursor
}

// LastRound returns the most recent round, if any.
func (m GameModel) LastRound() (game.Round, bool) {
	return m.game.LastRound()
}
