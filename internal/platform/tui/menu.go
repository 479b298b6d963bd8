package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// MenuKind identifies what a menu item opens.
type MenuKind int

const (
	MenuPlay MenuKind = iota
	MenuOnline
	MenuScores
	MenuSettings
	MenuCredits
	MenuExit
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Kind    MenuKind
	Title   string
	Variant rules.Variant // Set for MenuPlay
}

// MenuItems returns the main menu entries. Online PvP is only offered when a
// coordinator is available (SSH sessions).
func MenuItems(online bool) []MenuItem {
	items := []MenuItem{
		{Kind: MenuPlay, Title: "Normal", Variant: rules.VariantNormal},
		{Kind: MenuPlay, Title: "Spock lizard", Variant: rules.VariantSpockLizard},
		{Kind: MenuPlay, Title: "Fire water", Variant: rules.VariantFireWater},
	}
	if online {
		items = append(items, MenuItem{Kind: MenuOnline, Title: "Online PvP"})
	}
	return append(items,
		MenuItem{Kind: MenuScores, Title: "Scores"},
		MenuItem{Kind: MenuSettings, Title: "Settings"},
		MenuItem{Kind: MenuCredits, Title: "Credits"},
		MenuItem{Kind: MenuExit, Title: "Exit"},
	)
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	player    string
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects an item
}

// NewMenuModel creates a new menu model. The cursor starts on the configured
// default variant.
func NewMenuModel(cfg core.RuntimeConfig, player string, online bool) MenuModel {
	m := MenuModel{
		items:     MenuItems(online),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
		keyMapper: NewKeyMapper(),
	}
	for i, item := range m.items {
		if item.Kind == MenuPlay && item.Variant == cfg.Variant {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Digits jump straight to an item
	if k := msg.String(); len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		idx := int(k[0] - '1')
		if idx < len(m.items) {
			m.cursor = idx
			return m.selectCurrent()
		}
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.selectCurrent()
	}

	return m, nil
}

func (m MenuModel) selectCurrent() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	selected := m.items[m.cursor]
	if selected.Kind == MenuExit {
		m.quitting = true
		return m, nil
	}
	m.selected = &selected
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("R O C K   P A P E R   S C I S S O R S"))
	b.WriteString("\n\n")
	if m.player != "" {
		b.WriteString(helpStyle.Render("Playing as " + m.player))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		label := fmt.Sprintf("%d  %s", i+1, item.Title)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> " + label))
		} else {
			b.WriteString(itemStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"))

	return center(m.width, m.height, b.String())
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}
