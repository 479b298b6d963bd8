package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/game"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// OverviewModel shows the totals of a finished game.
type OverviewModel struct {
	variant rules.Variant
	stats   game.Stats
	player  string
	width   int
	height  int
	done    bool
}

// NewOverviewModel creates the overview for a finished game.
func NewOverviewModel(v rules.Variant, stats game.Stats, player string, width, height int) OverviewModel {
	return OverviewModel{
		variant: v,
		stats:   stats,
		player:  player,
		width:   width,
		height:  height,
	}
}

// Init initializes the model.
func (m OverviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c", "C", "enter", " ", "esc":
			m.done = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the overview.
func (m OverviewModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Game overview"))
	b.WriteString("\n\n")
	b.WriteString(itemStyle.Render(m.variant.DisplayName()))
	b.WriteString("\n")
	if m.player != "" {
		b.WriteString(helpStyle.Render(m.player))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d, wins: %d, loses: %d, draws: %d",
		m.stats.Total(), m.stats.Wins, m.stats.Loses, m.stats.Draws))
	if m.stats.Wins+m.stats.Loses > 0 {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("Win rate: %.0f%%", m.stats.WinRate()*100)))
	}
	b.WriteString("\n\n")
	b.WriteString(buttonStyle.Render("(C)ontinue"))

	return center(m.width, m.height, panelStyle.Render(b.String()))
}

// Done reports whether the player dismissed the overview.
func (m OverviewModel) Done() bool {
	return m.done
}
