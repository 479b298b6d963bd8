package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// Settings rows, top to bottom.
const (
	settingName = iota
	settingSound
	settingVariant
	settingSave
	settingBack
	settingCount
)

// SettingsModel edits the player name, sound and default variant.
type SettingsModel struct {
	settings *config.Settings
	persist  bool // Write to settings.Path() on save
	name     textinput.Model
	sound    bool
	variant  rules.Variant
	cursor   int
	notice   string
	width    int
	height   int
	saved    bool
	back     bool
}

// NewSettingsModel creates the settings screen for s. When persist is false
// (SSH sessions) changes only apply to the running session.
func NewSettingsModel(s *config.Settings, persist bool, width, height int) SettingsModel {
	ti := textinput.New()
	ti.Placeholder = "Player name"
	ti.CharLimit = config.MaxNameLength
	ti.Width = config.MaxNameLength + 2
	ti.SetValue(s.DisplayName())
	ti.Focus()

	return SettingsModel{
		settings: s,
		persist:  persist,
		name:     ti,
		sound:    s.Sound,
		variant:  s.Variant(),
		width:    width,
		height:   height,
	}
}

// Init starts the cursor blink.
func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.back = true
		return m, nil
	case "up", "shift+tab":
		m.moveCursor(-1)
		return m, nil
	case "down", "tab":
		m.moveCursor(1)
		return m, nil
	}

	switch m.cursor {
	case settingName:
		if msg.Type == tea.KeyEnter {
			m.moveCursor(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		m.notice = ""
		return m, cmd

	case settingSound:
		switch msg.String() {
		case "enter", " ", "left", "right":
			m.sound = !m.sound
		}

	case settingVariant:
		switch msg.String() {
		case "enter", " ", "right":
			m.variant = cycleVariant(m.variant, 1)
		case "left":
			m.variant = cycleVariant(m.variant, -1)
		}

	case settingSave:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			m.save()
		}

	case settingBack:
		if msg.Type == tea.KeyEnter || msg.String() == " " {
			m.back = true
		}
	}
	return m, nil
}

func (m *SettingsModel) moveCursor(delta int) {
	m.cursor = (m.cursor + delta + settingCount) % settingCount
	if m.cursor == settingName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
}

// save applies the edited values. A rejected name leaves the settings unchanged.
func (m *SettingsModel) save() {
	if err := m.settings.SetPlayerName(m.name.Value()); err != nil {
		m.notice = "Player name must be 1-24 characters"
		return
	}
	m.settings.Sound = m.sound
	m.settings.DefaultVariant = m.variant.Key()

	if m.persist && m.settings.Path() != "" {
		if err := m.settings.Save(); err != nil {
			m.notice = err.Error()
			return
		}
	}
	m.saved = true
}

func cycleVariant(v rules.Variant, delta int) rules.Variant {
	all := rules.Variants()
	idx := 0
	for i, candidate := range all {
		if candidate == v {
			idx = i
		}
	}
	return all[(idx+delta+len(all))%len(all)]
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	soundLabel := "Sound (Off)"
	if m.sound {
		soundLabel = "Sound (On)"
	}
	rows := []string{
		"Name: " + m.name.View(),
		soundLabel,
		"Default: < " + m.variant.DisplayName() + " >",
		"Save",
		"Back",
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + row))
		} else {
			b.WriteString(itemStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Tab/Up/Down: Move  |  Enter: Change  |  Esc: Back"))

	return center(m.width, m.height, b.String())
}

// Saved reports whether the settings were applied.
func (m SettingsModel) Saved() bool {
	return m.saved
}

// BackToMenu returns true if user left without saving.
func (m SettingsModel) BackToMenu() bool {
	return m.back
}
