package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	Variant   rules.Variant
	BestOf    int
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long before an empty lobby expires
	CleanupPeriod time.Duration // How often to clean up expired lobbies
	BestOf        int           // Default match length when a lobby does not set one
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
		BestOf:        3,
	}
}

// MatchResultSaver is an interface for saving match results.
// This allows the coordinator to save results without depending on the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	Variant        rules.Variant
	BestOf         int
	Player1Name    string
	Player2Name    string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	Rounds         int
	WinnerName     string
	EndReason      string
	DurationSecs   int
}

// Coordinator manages lobbies and active matches.
type Coordinator struct {
	config      CoordinatorConfig
	sessions    *SessionRegistry
	resultSaver MatchResultSaver // Optional, can be nil
	logger      *log.Logger      // Optional, can be nil

	mu      sync.RWMutex
	lobbies map[string]*Lobby        // code -> lobby
	matches map[MatchID]*OnlineMatch // matchID -> match

	// Track which session is in which lobby/match
	sessionLobby map[SessionID]string  // sessionID -> lobby code
	sessionMatch map[SessionID]MatchID // sessionID -> matchID

	// Message channel for async processing
	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	saves    sync.WaitGroup
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg CoordinatorConfig, sessions *SessionRegistry) *Coordinator {
	defaults := DefaultCoordinatorConfig()
	if cfg.LobbyTimeout <= 0 {
		cfg.LobbyTimeout = defaults.LobbyTimeout
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = defaults.CleanupPeriod
	}
	if cfg.BestOf <= 0 {
		cfg.BestOf = defaults.BestOf
	}

	return &Coordinator{
		config:       cfg,
		sessions:     sessions,
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgChan:      make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger sets the optional logger for lobby and match lifecycle lines.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// Sessions returns the session registry the coordinator resolves IDs against.
func (c *Coordinator) Sessions() *SessionRegistry {
	return c.sessions
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts down the coordinator, stops running matches and waits for
// pending result saves.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})

	c.mu.RLock()
	for _, m := range c.matches {
		m.Stop()
	}
	c.mu.RUnlock()

	c.saves.Wait()
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) logInfo(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Info(msg, keyvals...)
	}
}

// processMessages handles incoming messages.
func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case SubmitMoveMsg:
		c.handleSubmitMove(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	if !msg.Variant.Valid() {
		session.Send(LobbyErrorEvent{Message: "Choose a variant first"})
		return
	}

	bestOf := msg.BestOf
	if bestOf <= 0 {
		bestOf = c.config.BestOf
	}
	if bestOf%2 == 0 {
		session.Send(LobbyErrorEvent{Message: "Best-of must be odd"})
		return
	}

	c.mu.Lock()
	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}
	if _, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a match"})
		return
	}

	code := c.generateUniqueCode()
	lobby := &Lobby{
		Code:      code,
		Variant:   msg.Variant,
		BestOf:    bestOf,
		Host:      session,
		CreatedAt: time.Now(),
	}

	c.lobbies[code] = lobby
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.logInfo("lobby created", "code", code, "host", session.Name(), "variant", msg.Variant, "best_of", bestOf)
	session.Send(LobbyCreatedEvent{Code: code, Variant: msg.Variant, BestOf: bestOf})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	if !exists {
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	}

	if lobby.Joiner != nil {
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	}

	if lobby.Host.ID() == msg.SessionID {
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{
		Code:         code,
		Side:         Player1,
		OpponentID:   msg.SessionID,
		OpponentName: session.Name(),
	})
	session.Send(LobbyJoinedEvent{
		Code:         code,
		Side:         Player2,
		OpponentID:   lobby.Host.ID(),
		OpponentName: lobby.Host.Name(),
	})

	c.startMatch(lobby)
}

func (c *Coordinator) startMatch(lobby *Lobby) {
	// Must be called with lock held

	matchID := NewMatchID()
	match := NewOnlineMatch(matchID, lobby.Code, lobby.Variant, lobby.BestOf, lobby.Host, lobby.Joiner)

	c.matches[matchID] = match
	hostID := lobby.Host.ID()
	joinerID := lobby.Joiner.ID()

	delete(c.sessionLobby, hostID)
	delete(c.sessionLobby, joinerID)
	c.sessionMatch[hostID] = matchID
	c.sessionMatch[joinerID] = matchID

	delete(c.lobbies, lobby.Code)

	lobby.Host.Send(MatchStartedEvent{
		MatchID:      matchID,
		Side:         Player1,
		Code:         lobby.Code,
		Variant:      lobby.Variant,
		BestOf:       lobby.BestOf,
		OpponentName: lobby.Joiner.Name(),
	})
	lobby.Joiner.Send(MatchStartedEvent{
		MatchID:      matchID,
		Side:         Player2,
		Code:         lobby.Code,
		Variant:      lobby.Variant,
		BestOf:       lobby.BestOf,
		OpponentName: lobby.Host.Name(),
	})

	c.logInfo("match started", "match", matchID, "host", lobby.Host.Name(), "joiner", lobby.Joiner.Name())

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(matchID, result)
	})
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, exists := c.matches[matchID]
	if !exists {
		return
	}

	p1 := match.Session(Player1)
	p2 := match.Session(Player2)

	winnerName := ""
	switch result.Winner {
	case Player1:
		winnerName = p1.Name()
	case Player2:
		winnerName = p2.Name()
	}

	if c.resultSaver != nil {
		resultData := MatchResultData{
			MatchID:        string(matchID),
			Variant:        match.Variant(),
			BestOf:         match.BestOf(),
			Player1Name:    p1.Name(),
			Player2Name:    p2.Name(),
			Player1Session: string(p1.ID()),
			Player2Session: string(p2.ID()),
			Score1:         result.Score1,
			Score2:         result.Score2,
			Rounds:         result.Rounds,
			WinnerName:     winnerName,
			EndReason:      result.Reason.String(),
			DurationSecs:   int(result.Duration / time.Second),
		}
		// Best effort save, don't block the coordinator on the database
		c.saves.Add(1)
		go func() {
			defer c.saves.Done()
			if err := c.resultSaver.SaveMatchResult(resultData); err != nil && c.logger != nil {
				c.logger.Error("cannot save match result", "match", matchID, "err", err)
			}
		}()
	}

	for _, sessionID := range []SessionID{p1.ID(), p2.ID()} {
		delete(c.sessionMatch, sessionID)
	}
	delete(c.matches, matchID)

	c.logInfo("match ended", "match", matchID, "reason", result.Reason, "winner", winnerName,
		"score", fmt.Sprintf("%d-%d", result.Score1, result.Score2))

	endEvent := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Score1:  result.Score1,
		Score2:  result.Score2,
		Rounds:  result.Rounds,
	}
	p1.Send(endEvent)
	p2.Send(endEvent)
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists || lobby.Host.ID() != msg.SessionID {
		return
	}

	c.closeLobby(lobby)
	c.logInfo("lobby cancelled", "code", msg.Code)
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists {
		return
	}

	switch msg.SessionID {
	case lobby.Host.ID():
		c.closeLobby(lobby)
	case joinerID(lobby):
		c.dropJoiner(lobby)
	}
}

// closeLobby removes the lobby and releases both sessions. Lock must be held.
func (c *Coordinator) closeLobby(lobby *Lobby) {
	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}
	delete(c.sessionLobby, lobby.Host.ID())
	delete(c.lobbies, lobby.Code)
}

// dropJoiner reopens the lobby for another player. Lock must be held.
func (c *Coordinator) dropJoiner(lobby *Lobby) {
	if lobby.Joiner == nil {
		return
	}
	delete(c.sessionLobby, lobby.Joiner.ID())
	lobby.Joiner = nil
	lobby.Host.Send(LobbyPlayerLeftEvent{Code: lobby.Code})
}

func joinerID(lobby *Lobby) SessionID {
	if lobby.Joiner == nil {
		return ""
	}
	return lobby.Joiner.ID()
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if !exists {
		return
	}

	match.PlayerDisconnected(msg.SessionID)
}

func (c *Coordinator) handleSubmitMove(msg SubmitMoveMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if !exists {
		return
	}

	match.SubmitMove(msg.Player, msg.Move)
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		if lobby, exists := c.lobbies[code]; exists {
			switch msg.SessionID {
			case lobby.Host.ID():
				c.closeLobby(lobby)
			case joinerID(lobby):
				c.dropJoiner(lobby)
			}
		}
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		// Only expire lobbies without joiners
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			c.closeLobby(lobby)
			c.logInfo("lobby expired", "code", code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase alphanumeric code.
func generateJoinCode() string {
	b := make([]byte, 4) // 32 bits encode to 7 base32 chars, we take 6
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// GetLobby returns a lobby by code (for testing/debug).
func (c *Coordinator) GetLobby(code string) (*Lobby, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lobbies[strings.ToUpper(code)]
	return l, ok
}

// GetMatch returns a match by ID (for testing/debug).
func (c *Coordinator) GetMatch(id MatchID) (*OnlineMatch, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.matches[id]
	return m, ok
}

// LobbyCount returns the number of active lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of active matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
