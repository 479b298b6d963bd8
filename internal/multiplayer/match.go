package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID  MatchID
	Reason   MatchEndReason
	Winner   PlayerID
	Score1   int
	Score2   int
	Rounds   int
	Duration time.Duration
}

// OnlineMatch is an authoritative best-of-N match between two sessions.
// Each round collects one hidden move per side, then resolves them with
// rules.Resolve from Player1's perspective.
type OnlineMatch struct {
	id      MatchID
	code    string
	variant rules.Variant
	bestOf  int

	player1Session SessionHandle
	player2Session SessionHandle

	moveChan       chan submittedMove
	disconnectChan chan SessionID
	done           chan struct{}
	doneOnce       sync.Once

	// Owned by the Run goroutine.
	round     int
	score1    int
	score2    int
	move1     rules.Move
	move2     rules.Move
	startedAt time.Time
}

type submittedMove struct {
	player PlayerID
	move   rules.Move
}

// NewOnlineMatch creates a new online match. bestOf is clamped to at least 1.
func NewOnlineMatch(
	id MatchID,
	code string,
	variant rules.Variant,
	bestOf int,
	p1Session, p2Session SessionHandle,
) *OnlineMatch {
	if bestOf < 1 {
		bestOf = 1
	}
	return &OnlineMatch{
		id:             id,
		code:           code,
		variant:        variant,
		bestOf:         bestOf,
		player1Session: p1Session,
		player2Session: p2Session,
		moveChan:       make(chan submittedMove, 16),
		disconnectChan: make(chan SessionID, 2),
		done:           make(chan struct{}),
		round:          1,
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// Variant returns the variant the match is played in.
func (m *OnlineMatch) Variant() rules.Variant {
	return m.variant
}

// BestOf returns the maximum number of decided rounds.
func (m *OnlineMatch) BestOf() int {
	return m.bestOf
}

// Session returns the session playing side p.
func (m *OnlineMatch) Session(p PlayerID) SessionHandle {
	if p == Player2 {
		return m.player2Session
	}
	return m.player1Session
}

// SubmitMove queues a move for player. Non-blocking, uses a buffered channel.
func (m *OnlineMatch) SubmitMove(player PlayerID, move rules.Move) {
	select {
	case m.moveChan <- submittedMove{player: player, move: move}:
	default:
		// Channel full, drop (only possible when a client floods)
	}
}

// PlayerDisconnected signals that a player has disconnected.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run starts the authoritative match loop.
// The callback is called when the match ends.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	m.startedAt = time.Now()
	go m.monitorSessions()

	for {
		select {
		case sm := <-m.moveChan:
			result, done := m.handleMove(sm)
			if done {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case sessionID := <-m.disconnectChan:
			result := m.handleDisconnect(sessionID)
			if onComplete != nil {
				onComplete(result)
			}
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) handleMove(sm submittedMove) (MatchResult, bool) {
	if sm.player != Player1 && sm.player != Player2 {
		return MatchResult{}, false
	}
	session := m.Session(sm.player)

	if !m.variant.Legal(sm.move) {
		session.Send(MoveRejectedEvent{
			MatchID: m.id,
			Move:    sm.move,
			Reason:  "Wrong move for " + m.variant.DisplayName(),
		})
		return MatchResult{}, false
	}

	slot := &m.move1
	if sm.player == Player2 {
		slot = &m.move2
	}
	if *slot != rules.MoveNone {
		session.Send(MoveRejectedEvent{
			MatchID: m.id,
			Move:    sm.move,
			Reason:  "Move already locked",
		})
		return MatchResult{}, false
	}
	*slot = sm.move

	locked := MoveLockedEvent{MatchID: m.id, Round: m.round, Player: sm.player}
	m.broadcast(locked)

	if m.move1 == rules.MoveNone || m.move2 == rules.MoveNone {
		return MatchResult{}, false
	}
	return m.resolveRound()
}

func (m *OnlineMatch) resolveRound() (MatchResult, bool) {
	outcome := rules.Resolve(m.move1, m.move2, m.variant)

	winner := PlayerNone
	switch outcome {
	case rules.Win:
		m.score1++
		winner = Player1
	case rules.Lose:
		m.score2++
		winner = Player2
	}

	m.broadcast(RoundResolvedEvent{
		MatchID: m.id,
		Round:   m.round,
		Move1:   m.move1,
		Move2:   m.move2,
		Outcome: outcome,
		Winner:  winner,
		Phrase:  rules.Phrase(m.move1, m.move2),
		Score1:  m.score1,
		Score2:  m.score2,
	})

	played := m.round
	m.round++
	m.move1, m.move2 = rules.MoveNone, rules.MoveNone

	need := WinsNeeded(m.bestOf)
	if m.score1 < need && m.score2 < need {
		return MatchResult{}, false
	}

	matchWinner := Player1
	if m.score2 >= need {
		matchWinner = Player2
	}
	return MatchResult{
		MatchID:  m.id,
		Reason:   MatchEndReasonCompleted,
		Winner:   matchWinner,
		Score1:   m.score1,
		Score2:   m.score2,
		Rounds:   played,
		Duration: time.Since(m.startedAt),
	}, true
}

func (m *OnlineMatch) handleDisconnect(sessionID SessionID) MatchResult {
	leaver := Player2
	if sessionID == m.player1Session.ID() {
		leaver = Player1
	}
	winner := leaver.Opponent()

	return MatchResult{
		MatchID:  m.id,
		Reason:   MatchEndReasonDisconnect,
		Winner:   winner,
		Score1:   m.score1,
		Score2:   m.score2,
		Rounds:   m.round - 1,
		Duration: time.Since(m.startedAt),
	}
}

func (m *OnlineMatch) broadcast(evt SessionEvent) {
	m.player1Session.Send(evt)
	m.player2Session.Send(evt)
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.player1Session.Done():
		m.PlayerDisconnected(m.player1Session.ID())
	case <-m.player2Session.Done():
		m.PlayerDisconnected(m.player2Session.ID())
	case <-m.done:
	}
}

// Stop gracefully stops the match without reporting a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
