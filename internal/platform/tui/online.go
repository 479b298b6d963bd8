package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match started
)

// joinCodeLength matches the coordinator's lobby codes.
const joinCodeLength = 6

// OnlineLobbyModel handles the online matchmaking flow.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	// Host state
	variant   rules.Variant
	bestOf    int
	lobbyCode string

	// Join state
	joinCodeInput string
	lobbyError    string
	opponentName  string

	started    *multiplayer.MatchStartedEvent
	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model. v is the variant
// offered when hosting.
func NewOnlineLobbyModel(
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	v rules.Variant,
	bestOf int,
	width, height int,
) OnlineLobbyModel {
	if !v.Valid() {
		v = rules.VariantNormal
	}
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		sessionID:   sessionID,
		coordinator: coordinator,
		variant:     v,
		bestOf:      bestOf,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.variant = msg.Variant
		m.bestOf = msg.BestOf
		m.lobbyError = ""
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyJoinedEvent:
		m.opponentName = msg.OpponentName
	case multiplayer.LobbyErrorEvent:
		m.lobbyError = msg.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
		case OnlineStateHostWaiting:
			m.state = OnlineStateChooseMode
			m.lobbyCode = ""
		}
	case multiplayer.LobbyPlayerLeftEvent:
		// Joiner left before the match, keep waiting
		m.opponentName = ""
	case multiplayer.MatchStartedEvent:
		started := msg
		m.started = &started
		m.state = OnlineStateInMatch
	case multiplayer.MatchEndedEvent:
		// The host closed the lobby we were joining
		m.lobbyError = msg.Reason.String()
		m.state = OnlineStateChooseMode
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, nil
	}

	switch m.state {
	case OnlineStateChooseMode:
		m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting, OnlineStateJoinWaiting:
		switch msg.String() {
		case "esc", "b", "q":
			m.leave()
			m.state = OnlineStateChooseMode
		}
	case OnlineStateJoinEnterCode:
		m.handleJoinCodeKey(msg)
	}
	return m, nil
}

func (m *OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "h", "H", "1":
		m.lobbyError = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			Variant:   m.variant,
			BestOf:    m.bestOf,
		})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.lobbyError = ""
	case "left":
		m.variant = cycleVariant(m.variant, -1)
	case "right", "tab":
		m.variant = cycleVariant(m.variant, 1)
	case "esc", "b", "q":
		m.backToMenu = true
	}
}

func (m *OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) {
	key := msg.String()

	switch key {
	case "esc":
		m.state = OnlineStateChooseMode
	case "enter":
		if len(m.joinCodeInput) == joinCodeLength {
			m.state = OnlineStateJoinWaiting
			m.lobbyError = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		// Accept alphanumeric input for code
		if len(key) == 1 && len(m.joinCodeInput) < joinCodeLength {
			c := strings.ToUpper(key)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
				m.joinCodeInput += c
			}
		}
	}
}

// leave withdraws from a hosted or joined lobby.
func (m *OnlineLobbyModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
		m.lobbyCode = ""
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.joinCodeInput})
	}
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	var b strings.Builder

	switch m.state {
	case OnlineStateChooseMode:
		b.WriteString(titleStyle.Render("ONLINE PVP"))
		b.WriteString("\n\n")
		b.WriteString(itemStyle.Render(fmt.Sprintf("Variant: < %s >", m.variant.DisplayName())))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("Best of %d", m.bestOf)))
		b.WriteString("\n\n")
		b.WriteString("[H] Host a game\n")
		b.WriteString("[J] Join a game\n\n")
		b.WriteString(helpStyle.Render("Left/Right: Variant  |  Esc: Back"))

	case OnlineStateHostWaiting:
		b.WriteString(titleStyle.Render("HOSTING GAME"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s, best of %d\n\n", m.variant.DisplayName(), m.bestOf))
		b.WriteString("Share this code with your opponent:\n\n")
		b.WriteString(buttonStyle.Render(m.lobbyCode))
		b.WriteString("\n\n")
		b.WriteString("Waiting for player to join...\n\n")
		b.WriteString(helpStyle.Render("Esc: Cancel"))

	case OnlineStateJoinEnterCode:
		b.WriteString(titleStyle.Render("JOIN GAME"))
		b.WriteString("\n\n")
		b.WriteString("Enter the game code:\n\n")
		codeDisplay := m.joinCodeInput
		if len(codeDisplay) < joinCodeLength {
			codeDisplay += "_" + strings.Repeat(" ", joinCodeLength-1-len(m.joinCodeInput))
		}
		b.WriteString(fmt.Sprintf("[ %s ]\n\n", codeDisplay))
		b.WriteString(helpStyle.Render("Enter: Connect  |  Esc: Back"))

	case OnlineStateJoinWaiting:
		b.WriteString(titleStyle.Render("CONNECTING"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Joining game: %s\n\n", m.joinCodeInput))
		b.WriteString("Please wait...\n\n")
		b.WriteString(helpStyle.Render("Esc: Cancel"))

	case OnlineStateInMatch:
		b.WriteString(titleStyle.Render("MATCH STARTING"))
	}

	if m.lobbyError != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Error: " + m.lobbyError))
	}

	return center(m.width, m.height, b.String())
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// Started returns the match start event once the match began.
func (m OnlineLobbyModel) Started() *multiplayer.MatchStartedEvent {
	return m.started
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// LobbyCode returns the hosted lobby code.
func (m OnlineLobbyModel) LobbyCode() string {
	return m.lobbyCode
}

// OnlineMatchModel plays one online match. The coordinator is authoritative;
// the model only submits moves and renders the events it receives.
type OnlineMatchModel struct {
	started     multiplayer.MatchStartedEvent
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator
	keyMapper   *KeyMapper
	keys        gameKeyMap
	sound       bool
	bell        io.Writer
	width       int
	height      int

	cursor         int
	locked         rules.Move // MoveNone while choosing
	opponentLocked bool
	round          int
	score          int
	opponentScore  int
	last           *multiplayer.RoundResolvedEvent
	notice         string
	ended          *multiplayer.MatchEndedEvent

	backToMenu bool
	quitting   bool
}

// NewOnlineMatchModel creates the match screen for a started match.
func NewOnlineMatchModel(
	started multiplayer.MatchStartedEvent,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	cfg core.RuntimeConfig,
	bell io.Writer,
) OnlineMatchModel {
	keys := newGameKeyMap(started.Variant, "leave match")
	keys.Reset.SetEnabled(false)

	return OnlineMatchModel{
		started:     started,
		sessionID:   sessionID,
		coordinator: coordinator,
		keyMapper:   NewKeyMapper(),
		keys:        keys,
		sound:       cfg.Sound,
		bell:        bell,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		cursor:      1,
		round:       1,
	}
}

// Init initializes the model.
func (m OnlineMatchModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and match events.
func (m OnlineMatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case multiplayer.MoveLockedEvent:
		if msg.MatchID == m.started.MatchID && msg.Player == m.started.Side.Opponent() {
			m.opponentLocked = true
		}
	case multiplayer.MoveRejectedEvent:
		if msg.MatchID == m.started.MatchID {
			m.locked = rules.MoveNone
			m.notice = msg.Reason
		}
	case multiplayer.RoundResolvedEvent:
		if msg.MatchID != m.started.MatchID {
			return m, nil
		}
		resolved := msg
		m.last = &resolved
		m.locked = rules.MoveNone
		m.opponentLocked = false
		m.round = msg.Round + 1
		m.score, m.opponentScore = sideScores(m.started.Side, msg.Score1, msg.Score2)
		if m.sound && m.bell != nil {
			return m, bellCmd(m.bell)
		}
	case multiplayer.MatchEndedEvent:
		if msg.MatchID != m.started.MatchID && msg.MatchID != "" {
			return m, nil
		}
		ended := msg
		m.ended = &ended
		m.score, m.opponentScore = sideScores(m.started.Side, msg.Score1, msg.Score2)
	}
	return m, nil
}

func sideScores(side core.PlayerID, score1, score2 int) (mine, theirs int) {
	if side == core.Player2 {
		return score2, score1
	}
	return score1, score2
}

func (m OnlineMatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, nil
	}

	if m.ended != nil {
		switch msg.String() {
		case "enter", " ", "esc", "b", "q":
			m.backToMenu = true
		}
		return m, nil
	}

	v := m.started.Variant
	intent := m.keyMapper.MapGameKey(msg, v)
	switch intent.Action {
	case core.ActionBack, core.ActionQuit:
		m.leave()
		m.backToMenu = true
		return m, nil
	}

	if m.locked != rules.MoveNone {
		return m, nil
	}

	switch intent.Action {
	case core.ActionLeft:
		m.cursor = core.Clamp(m.cursor-1, 1, v.MaxSlots())
	case core.ActionRight:
		m.cursor = core.Clamp(m.cursor+1, 1, v.MaxSlots())
	case core.ActionSelect:
		m.cursor = intent.Slot
	case core.ActionConfirm:
		mv, ok := v.SlotToMove(m.cursor)
		if !ok {
			return m, nil
		}
		m.locked = mv
		m.notice = ""
		m.coordinator.Send(multiplayer.SubmitMoveMsg{
			MatchID: m.started.MatchID,
			Player:  m.started.Side,
			Move:    mv,
		})
	case core.ActionNone:
		if intent.Err != nil {
			m.notice = intent.Err.Error()
		}
	}
	return m, nil
}

func (m *OnlineMatchModel) leave() {
	if m.ended != nil {
		return
	}
	m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.started.MatchID})
}

// View renders the match.
func (m OnlineMatchModel) View() string {
	v := m.started.Variant
	opponent := m.started.OpponentName
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s - best of %d", v.DisplayName(), m.started.BestOf)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("Round %d  |  first to %d wins", m.round, multiplayer.WinsNeeded(m.started.BestOf))))
	b.WriteString("\n\n")

	rightLabel := opponent
	if m.opponentLocked {
		rightLabel += " (ready)"
	}
	a := arena{LeftLabel: "You", RightLabel: rightLabel}
	switch {
	case m.locked != rules.MoveNone:
		a.Left = m.locked
	case m.last != nil && m.ended != nil:
		a.Left, a.Right = m.lastMoves()
		a.Outcome = m.last.OutcomeFor(m.started.Side)
	default:
		a.Left, _ = v.SlotToMove(m.cursor)
	}
	b.WriteString(RenderScreen(drawArena(min(m.width, 60), a)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Score: You %d - %d %s\n\n", m.score, m.opponentScore, opponent))

	if m.last != nil {
		mine, theirs := m.lastMoves()
		b.WriteString(renderRoundResult(opponent, mine, theirs, m.last.OutcomeFor(m.started.Side), m.last.Phrase))
		b.WriteString("\n\n")
	}

	switch {
	case m.ended != nil:
		b.WriteString(headerStyle.Render(m.endMessage()))
		b.WriteString("\n\n")
		b.WriteString(buttonStyle.Render("Back to menu"))
	case m.locked != rules.MoveNone:
		b.WriteString(fmt.Sprintf("Waiting for %s...", opponent))
	default:
		b.WriteString(renderSlots(v, m.cursor))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.keysHelp()))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
	}

	return center(m.width, m.height, b.String())
}

func (m OnlineMatchModel) keysHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		if !k.Enabled() {
			continue
		}
		parts = append(parts, k.Help().Key+" "+k.Help().Desc)
	}
	return strings.Join(parts, " • ")
}

// lastMoves returns the last resolved moves as (mine, theirs).
func (m OnlineMatchModel) lastMoves() (rules.Move, rules.Move) {
	if m.started.Side == core.Player2 {
		return m.last.Move2, m.last.Move1
	}
	return m.last.Move1, m.last.Move2
}

func (m OnlineMatchModel) endMessage() string {
	switch {
	case m.ended.Winner == m.started.Side:
		if m.ended.Reason == multiplayer.MatchEndReasonCompleted {
			return "You won the match!"
		}
		return "You won the match: " + m.ended.Reason.String()
	case m.ended.Winner == core.PlayerNone:
		return "Match over: " + m.ended.Reason.String()
	default:
		return "You lost the match"
	}
}

// Ended returns the end event once the match is over.
func (m OnlineMatchModel) Ended() *multiplayer.MatchEndedEvent {
	return m.ended
}

// Score returns (mine, opponent's).
func (m OnlineMatchModel) Score() (int, int) {
	return m.score, m.opponentScore
}

// Locked returns the submitted move of the current round, MoveNone if none.
func (m OnlineMatchModel) Locked() rules.Move {
	return m.locked
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineMatchModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineMatchModel) IsQuitting() bool {
	return m.quitting
}
