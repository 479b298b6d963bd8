package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	settings := config.Default()
	settings.Player.ID = "p-1"
	if err := settings.SetPlayerName("Ann"); err != nil {
		t.Fatalf("SetPlayerName() error = %v", err)
	}
	settings.Sound = false
	return NewSessionModel(testConfig(), SessionOptions{Store: store, Settings: settings})
}

func sessionKeys(m SessionModel, keys ...tea.KeyMsg) (SessionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(SessionModel)
	}
	return m, cmd
}

func TestMenuItems(t *testing.T) {
	tests := []struct {
		online   bool
		expected []string
	}{
		{false, []string{"Normal", "Spock lizard", "Fire water", "Scores", "Settings", "Credits", "Exit"}},
		{true, []string{"Normal", "Spock lizard", "Fire water", "Online PvP", "Scores", "Settings", "Credits", "Exit"}},
	}

	for _, tt := range tests {
		items := MenuItems(tt.online)
		titles := make([]string, len(items))
		for i, item := range items {
			titles[i] = item.Title
		}
		if strings.Join(titles, ",") != strings.Join(tt.expected, ",") {
			t.Errorf("MenuItems(%v) = %v, expected %v", tt.online, titles, tt.expected)
		}
	}
}

func TestMenuModelNavigation(t *testing.T) {
	cfg := testConfig()
	cfg.Variant = rules.VariantFireWater
	m := NewMenuModel(cfg, "Ann", false)
	if m.Cursor() != 2 {
		t.Fatalf("Cursor() = %d, expected default variant at 2", m.Cursor())
	}

	steps := []struct {
		key      tea.KeyMsg
		expected int
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, 1},
		{runeKey("k"), 0},
		{runeKey("k"), 0},
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{runeKey("j"), 2},
	}
	for _, step := range steps {
		next, _ := m.Update(step.key)
		m = next.(MenuModel)
		if m.Cursor() != step.expected {
			t.Errorf("after %q Cursor() = %d, expected %d", step.key.String(), m.Cursor(), step.expected)
		}
	}

	next, _ := m.Update(enterKey)
	m = next.(MenuModel)
	if sel := m.Selected(); sel == nil || sel.Kind != MenuPlay || sel.Variant != rules.VariantFireWater {
		t.Errorf("Selected() = %+v, expected Fire water", sel)
	}
}

func TestMenuModelExit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey("q"), runeKey("7")} {
		m := NewMenuModel(testConfig(), "", false)
		next, _ := m.Update(k)
		m = next.(MenuModel)
		if !m.IsQuitting() {
			t.Errorf("key %q: IsQuitting() = false, expected true", k.String())
		}
		if m.Selected() != nil {
			t.Errorf("key %q: Selected() = %+v, expected nil", k.String(), m.Selected())
		}
	}
}

func TestSessionFinishWithoutRoundsReturnsToMenu(t *testing.T) {
	m := newTestSession(t, nil)
	m, _ = sessionKeys(m, runeKey("1"))
	if m.Screen() != "game" {
		t.Fatalf("Screen() = %q after 1, expected game", m.Screen())
	}

	m, _ = sessionKeys(m, escKey)
	if m.Screen() != "menu" {
		t.Errorf("Screen() = %q after finishing an empty game, expected menu", m.Screen())
	}
}

func TestSessionGameOverview(t *testing.T) {
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	m := newTestSession(t, store)
	m, _ = sessionKeys(m, runeKey("2"), runeKey("l"), enterKey)
	for i := 0; i < revealTicks; i++ {
		next, _ := m.Update(TickMsg{Tag: m.game.tag})
		m = next.(SessionModel)
	}
	m, _ = sessionKeys(m, runeKey("f"))
	if m.Screen() != "overview" {
		t.Fatalf("Screen() = %q after finishing, expected overview", m.Screen())
	}
	view := m.View()
	for _, want := range []string{"Game overview", "Total: 1", "(C)ontinue"} {
		if !strings.Contains(view, want) {
			t.Errorf("overview missing %q", want)
		}
	}

	m, _ = sessionKeys(m, runeKey("c"))
	if m.Screen() != "menu" {
		t.Errorf("Screen() = %q after continue, expected menu", m.Screen())
	}

	standings, err := store.TopPlayers(rules.VariantSpockLizard, 10)
	if err != nil {
		t.Fatalf("TopPlayers() error = %v", err)
	}
	if len(standings) != 1 || standings[0].Player.Name != "Ann" {
		t.Errorf("TopPlayers() = %+v, expected Ann's game", standings)
	}
}

func TestSessionSideScreens(t *testing.T) {
	tests := []struct {
		key    string
		screen string
		back   tea.KeyMsg
	}{
		{"4", "scores", escKey},
		{"5", "settings", escKey},
		{"6", "credits", runeKey("b")},
	}

	for _, tt := range tests {
		m := newTestSession(t, nil)
		m, _ = sessionKeys(m, runeKey(tt.key))
		if m.Screen() != tt.screen {
			t.Errorf("key %s: Screen() = %q, expected %q", tt.key, m.Screen(), tt.screen)
			continue
		}
		m, _ = sessionKeys(m, tt.back)
		if m.Screen() != "menu" {
			t.Errorf("%s: Screen() = %q after back, expected menu", tt.screen, m.Screen())
		}
	}
}

func TestSessionClosingScreen(t *testing.T) {
	m := newTestSession(t, nil)
	m, cmd := sessionKeys(m, runeKey("q"))
	if !m.Closing() {
		t.Fatal("Closing() = false after q")
	}
	if cmd == nil {
		t.Fatal("closing screen did not schedule the exit")
	}
	if !strings.Contains(m.View(), "Bye, bye") {
		t.Error("closing view does not say goodbye")
	}

	_, cmd = m.Update(closeMsg{})
	if cmd == nil {
		t.Fatal("closeMsg returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("closeMsg did not quit the program")
	}
}

func TestSessionCtrlCQuits(t *testing.T) {
	m := newTestSession(t, nil)
	m, cmd := sessionKeys(m, runeKey("1"), ctrlCKey)
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit the program")
	}
	if m.View() != "" {
		t.Errorf("View() = %q after quit, expected empty", m.View())
	}
}

func TestSessionSettingsRename(t *testing.T) {
	m := newTestSession(t, nil)
	m, _ = sessionKeys(m, runeKey("5"))
	m.settings.name.SetValue("Bea")
	// Name -> Sound -> Variant -> Save
	m, _ = sessionKeys(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, enterKey)

	if m.Screen() != "menu" {
		t.Fatalf("Screen() = %q after save, expected menu", m.Screen())
	}
	if m.Player().Name != "Bea" {
		t.Errorf("Player().Name = %q, expected %q", m.Player().Name, "Bea")
	}
	if m.Player().ID != "p-1" {
		t.Errorf("Player().ID = %q, expected the id to survive a rename", m.Player().ID)
	}
}

func TestSettingsRejectsEmptyName(t *testing.T) {
	s := config.Default()
	if err := s.SetPlayerName("Ann"); err != nil {
		t.Fatalf("SetPlayerName() error = %v", err)
	}
	m := NewSettingsModel(s, false, 80, 24)
	m.name.SetValue("")
	m.cursor = settingSave
	next, _ := m.Update(enterKey)
	m = next.(SettingsModel)

	if m.Saved() {
		t.Error("Saved() = true for an empty name")
	}
	if s.DisplayName() != "Ann" {
		t.Errorf("DisplayName() = %q, expected the old name", s.DisplayName())
	}
	if m.notice == "" {
		t.Error("no notice shown for the rejected name")
	}
}

func TestSessionOnlineMenuEntry(t *testing.T) {
	registry := multiplayer.NewSessionRegistry()
	coord := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), registry)
	coord.Start()
	defer coord.Stop()

	session := multiplayer.NewChannelSession(multiplayer.NewSessionID(), "ann", 16)
	registry.Register(session)
	defer session.Close()

	m := NewSessionModel(testConfig(), SessionOptions{
		Settings:    config.Default(),
		Coordinator: coord,
		Session:     session,
	})
	if m.Init() == nil {
		t.Fatal("Init() returned no command for an online session")
	}

	m, _ = sessionKeys(m, runeKey("4"))
	if m.Screen() != "lobby" {
		t.Fatalf("Screen() = %q, expected lobby", m.Screen())
	}

	// Events are routed to the lobby and the pump is re-armed.
	next, cmd := m.Update(multiplayer.LobbyCreatedEvent{Code: "ABCDEF", Variant: rules.VariantNormal, BestOf: 3})
	m = next.(SessionModel)
	if cmd == nil {
		t.Error("event handling did not re-arm the listener")
	}
	if m.lobby.LobbyCode() != "ABCDEF" {
		t.Errorf("LobbyCode() = %q, expected %q", m.lobby.LobbyCode(), "ABCDEF")
	}
}
