// Package multiplayer runs online player-vs-player rock-paper-scissors:
// sessions, lobbies with join codes and authoritative best-of-N matches.
// It is transport neutral; the SSH front-end bridges it to Bubble Tea.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is the lobby host, Player2 the joiner.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	PlayerNone = core.PlayerNone
	Player1    = core.Player1
	Player2    = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// MatchID uniquely identifies an online match.
type MatchID string

// NewMatchID returns a random match identifier.
func NewMatchID() MatchID {
	return MatchID("match-" + uuid.NewString())
}

// WinsNeeded returns how many round wins end a best-of-n match.
// n is clamped to at least 1.
func WinsNeeded(bestOf int) int {
	if bestOf < 1 {
		bestOf = 1
	}
	return bestOf/2 + 1
}
