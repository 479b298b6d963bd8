package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// closingDelay is how long the closing screen stays up.
const closingDelay = time.Second

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewOverview
	viewScores
	viewSettings
	viewCredits
	viewLobby
	viewMatch
	viewClosing
)

// SessionOptions wires a session to its collaborators. Everything except
// Settings may be nil.
type SessionOptions struct {
	Store    *storage.Store
	Settings *config.Settings
	Persist  bool // Save settings changes to disk

	// Online play, set for SSH sessions only
	Coordinator *multiplayer.Coordinator
	Session     *multiplayer.ChannelSession

	Bell io.Writer // Receives the terminal bell
}

// SessionModel manages the full session flow: menu, games, overview and the
// side screens. It is the top-level model for local and SSH sessions.
//
// SessionModel owns the coordinator event pump: exactly one listen command is
// outstanding at a time and it is re-armed after every event.
type SessionModel struct {
	opts   SessionOptions
	config core.RuntimeConfig
	player storage.Player
	view   sessionView

	menu     MenuModel
	game     GameModel
	overview OverviewModel
	scores   ScoreboardModel
	settings SettingsModel
	credits  CreditsModel
	lobby    OnlineLobbyModel
	match    OnlineMatchModel

	quitting bool
}

// NewSessionModel creates a new session model. cfg.Variant preselects the
// menu entry; when unset the configured default variant is used.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	if opts.Settings == nil {
		opts.Settings = config.Default()
	}
	if !cfg.Variant.Valid() {
		cfg.Variant = opts.Settings.Variant()
	}
	cfg.Sound = opts.Settings.Sound

	m := SessionModel{
		opts:   opts,
		config: cfg,
		player: playerFromSettings(opts.Settings),
	}
	m.menu = NewMenuModel(cfg, m.player.Name, m.online())
	return m
}

func playerFromSettings(s *config.Settings) storage.Player {
	return storage.Player{ID: s.Player.ID, Name: s.DisplayName()}
}

func (m SessionModel) online() bool {
	return m.opts.Coordinator != nil && m.opts.Session != nil
}

// listen waits for the next coordinator event.
func (m SessionModel) listen() tea.Cmd {
	if !m.online() {
		return nil
	}
	s := m.opts.Session
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return evt
		case <-s.Done():
			return nil
		}
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.listen())
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	case closeMsg:
		return m, tea.Quit
	case multiplayer.SessionEvent:
		next, cmd := m.handleEvent(msg)
		return next, tea.Batch(cmd, m.listen())
	}

	switch m.view {
	case viewMenu:
		return m.updateMenu(msg)
	case viewGame:
		return m.updateGame(msg)
	case viewOverview:
		return m.updateOverview(msg)
	case viewScores:
		return m.updateScores(msg)
	case viewSettings:
		return m.updateSettings(msg)
	case viewCredits:
		return m.updateCredits(msg)
	case viewLobby:
		return m.updateLobby(msg)
	case viewMatch:
		return m.updateMatch(msg)
	}
	return m, nil
}

// handleEvent routes a coordinator event to the online screen showing.
// Events for other screens are dropped.
func (m SessionModel) handleEvent(evt multiplayer.SessionEvent) (SessionModel, tea.Cmd) {
	switch m.view {
	case viewLobby:
		next, cmd := m.updateLobby(evt)
		return next.(SessionModel), cmd
	case viewMatch:
		next, cmd := m.updateMatch(evt)
		return next.(SessionModel), cmd
	}
	return m, nil
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.config, m.player.Name, m.online())
	return m, m.menu.Init()
}

func (m SessionModel) toClosing() (tea.Model, tea.Cmd) {
	m.view = viewClosing
	return m, closeCmd(closingDelay)
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		return m.toClosing()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	w, h := m.config.ScreenW, m.config.ScreenH
	switch selected.Kind {
	case MenuPlay:
		m.game = NewGameModel(selected.Variant, m.config, m.opts.Store, m.player, m.opts.Bell)
		m.view = viewGame
		return m, m.game.Init()
	case MenuOnline:
		if !m.online() {
			return m.toMenu()
		}
		m.lobby = NewOnlineLobbyModel(m.opts.Session.ID(), m.opts.Coordinator,
			m.config.Variant, m.opts.Settings.Server.BestOf, w, h)
		m.view = viewLobby
		return m, m.lobby.Init()
	case MenuScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.config.Variant, w, h)
		m.view = viewScores
		return m, m.scores.Init()
	case MenuSettings:
		m.settings = NewSettingsModel(m.opts.Settings, m.opts.Persist, w, h)
		m.view = viewSettings
		return m, m.settings.Init()
	case MenuCredits:
		m.credits = NewCreditsModel(w, h)
		m.view = viewCredits
		return m, m.credits.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		return m.quit()
	}
	if m.game.Finished() {
		stats := m.game.Stats()
		if stats.Total() == 0 {
			return m.toMenu()
		}
		m.overview = NewOverviewModel(m.game.Variant(), stats, m.player.Name, m.config.ScreenW, m.config.ScreenH)
		m.view = viewOverview
		return m, m.overview.Init()
	}
	return m, cmd
}

func (m SessionModel) updateOverview(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.overview.Update(msg)
	if overview, ok := next.(OverviewModel); ok {
		m.overview = overview
	}
	if isCtrlC(msg) {
		return m.quit()
	}
	if m.overview.Done() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isCtrlC(msg) {
		return m.quit()
	}
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isCtrlC(msg) {
		return m.quit()
	}
	next, cmd := m.settings.Update(msg)
	if settings, ok := next.(SettingsModel); ok {
		m.settings = settings
	}
	if m.settings.Saved() {
		m.player = playerFromSettings(m.opts.Settings)
		m.config.Sound = m.opts.Settings.Sound
		m.config.Variant = m.opts.Settings.Variant()
		return m.toMenu()
	}
	if m.settings.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateCredits(msg tea.Msg) (tea.Model, tea.Cmd) {
	if isCtrlC(msg) {
		return m.quit()
	}
	next, cmd := m.credits.Update(msg)
	if credits, ok := next.(CreditsModel); ok {
		m.credits = credits
	}
	if m.credits.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.lobby.Update(msg)
	if lobby, ok := next.(OnlineLobbyModel); ok {
		m.lobby = lobby
	}

	if m.lobby.IsQuitting() {
		return m.quit()
	}
	if m.lobby.BackToMenu() {
		return m.toMenu()
	}
	if started := m.lobby.Started(); started != nil {
		m.match = NewOnlineMatchModel(*started, m.opts.Session.ID(), m.opts.Coordinator, m.config, m.opts.Bell)
		m.view = viewMatch
		return m, m.match.Init()
	}
	return m, cmd
}

func (m SessionModel) updateMatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.match.Update(msg)
	if match, ok := next.(OnlineMatchModel); ok {
		m.match = match
	}

	if m.match.IsQuitting() {
		return m.quit()
	}
	if m.match.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func isCtrlC(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	return ok && k.String() == "ctrl+c"
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewOverview:
		return m.overview.View()
	case viewScores:
		return m.scores.View()
	case viewSettings:
		return m.settings.View()
	case viewCredits:
		return m.credits.View()
	case viewLobby:
		return m.lobby.View()
	case viewMatch:
		return m.match.View()
	case viewClosing:
		return center(m.config.ScreenW, m.config.ScreenH, titleStyle.Render("Bye, bye"))
	}
	return m.menu.View()
}

// Player returns the identity rounds are stored under.
func (m SessionModel) Player() storage.Player {
	return m.player
}

// Closing reports whether the closing screen is shown.
func (m SessionModel) Closing() bool {
	return m.view == viewClosing
}

// Screen returns the name of the current screen, mainly for logging.
func (m SessionModel) Screen() string {
	names := [...]string{"menu", "game", "overview", "scores", "settings", "credits", "lobby", "match", "closing"}
	return names[m.view]
}

// Run starts a local Bubble Tea session on the terminal.
func Run(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
