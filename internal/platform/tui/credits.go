package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// creditSection is one heading of the credits screen.
type creditSection struct {
	Header string
	Lines  []string
}

var credits = []creditSection{
	{
		Header: "Rules",
		Lines: []string{
			"Rock paper scissors Spock lizard by Sam Kass and Karen Bryla.",
			"Fire and water are the house variation.",
		},
	},
	{
		Header: "Terminal",
		Lines: []string{
			"Bubble Tea, Bubbles, Lip Gloss, Log and Wish by Charm.",
			"Cobra by spf13.",
		},
	},
	{
		Header: "Storage",
		Lines: []string{
			"SQLite via modernc.org/sqlite, settings in YAML.",
		},
	},
}

// CreditsModel is the static credits screen.
type CreditsModel struct {
	width  int
	height int
	back   bool
}

// NewCreditsModel creates the credits screen.
func NewCreditsModel(width, height int) CreditsModel {
	return CreditsModel{width: width, height: height}
}

// Init initializes the model.
func (m CreditsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m CreditsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "b", "B", "esc", "enter", "q":
			m.back = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the credits.
func (m CreditsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Credits"))
	b.WriteString("\n")
	for _, s := range credits {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(s.Header))
		b.WriteString("\n")
		for _, line := range s.Lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render("(B)ack"))

	return center(m.width, m.height, b.String())
}

// BackToMenu returns true if user wants to go back to menu.
func (m CreditsModel) BackToMenu() bool {
	return m.back
}
