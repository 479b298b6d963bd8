package multiplayer

import "github.com/vovakirdan/tui-rps/internal/rules"

// SessionEvent represents an event sent from the coordinator or a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent is sent when a lobby is successfully created.
type LobbyCreatedEvent struct {
	Code    string
	Variant rules.Variant
	BestOf  int
}

func (LobbyCreatedEvent) sessionEvent() {}

// LobbyErrorEvent is sent when a lobby operation fails.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// LobbyJoinedEvent is sent to both host and joiner when someone joins.
type LobbyJoinedEvent struct {
	Code         string
	Side         PlayerID // Which side this session plays (Player1 or Player2)
	OpponentID   SessionID
	OpponentName string
}

func (LobbyJoinedEvent) sessionEvent() {}

// LobbyPlayerLeftEvent is sent when a player leaves the lobby before match starts.
type LobbyPlayerLeftEvent struct {
	Code string
}

func (LobbyPlayerLeftEvent) sessionEvent() {}

// MatchStartedEvent is sent when the match begins.
type MatchStartedEvent struct {
	MatchID      MatchID
	Side         PlayerID
	Code         string // Keep code for display
	Variant      rules.Variant
	BestOf       int
	OpponentName string
}

func (MatchStartedEvent) sessionEvent() {}

// MoveRejectedEvent is sent to a player whose move was not accepted.
type MoveRejectedEvent struct {
	MatchID MatchID
	Move    rules.Move
	Reason  string
}

func (MoveRejectedEvent) sessionEvent() {}

// MoveLockedEvent is sent to both players when one side has locked a move.
// The move itself stays hidden until the round resolves.
type MoveLockedEvent struct {
	MatchID MatchID
	Round   int
	Player  PlayerID
}

func (MoveLockedEvent) sessionEvent() {}

// RoundResolvedEvent is sent to both players when both moves are in.
// Outcome is from Player1's perspective; Winner is PlayerNone on a draw.
type RoundResolvedEvent struct {
	MatchID MatchID
	Round   int
	Move1   rules.Move
	Move2   rules.Move
	Outcome rules.Outcome
	Winner  PlayerID
	Phrase  string
	Score1  int
	Score2  int
}

func (RoundResolvedEvent) sessionEvent() {}

// OutcomeFor returns the round outcome seen by side.
func (e RoundResolvedEvent) OutcomeFor(side PlayerID) rules.Outcome {
	if side == Player2 {
		return e.Outcome.Invert()
	}
	return e.Outcome
}

// MatchEndedEvent is sent when the match ends.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID // PlayerNone if nobody won
	Score1  int
	Score2  int
	Rounds  int
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // A player reached the winning score
	MatchEndReasonDisconnect                       // Opponent disconnected
	MatchEndReasonCancelled                        // Match was cancelled
	MatchEndReasonHostLeft                         // Host left the lobby
	MatchEndReasonJoinerLeft                       // Joiner left the lobby
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Match completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	case MatchEndReasonCancelled:
		return "Match cancelled"
	case MatchEndReasonHostLeft:
		return "Host left"
	case MatchEndReasonJoinerLeft:
		return "Opponent left"
	default:
		return "Unknown"
	}
}

// CoordinatorMessage represents a message from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg requests creation of a new lobby.
// BestOf <= 0 uses the coordinator default.
type CreateLobbyMsg struct {
	SessionID SessionID
	Variant   rules.Variant
	BestOf    int
}

func (CreateLobbyMsg) coordinatorMessage() {}

// JoinLobbyMsg requests joining an existing lobby.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinLobbyMsg) coordinatorMessage() {}

// CancelLobbyMsg requests cancellation of a hosted lobby.
type CancelLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (CancelLobbyMsg) coordinatorMessage() {}

// LeaveLobbyMsg requests leaving a joined lobby.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (LeaveLobbyMsg) coordinatorMessage() {}

// LeaveMatchMsg requests leaving an active match. The opponent wins.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

func (LeaveMatchMsg) coordinatorMessage() {}

// SubmitMoveMsg locks a player's move for the current round.
type SubmitMoveMsg struct {
	MatchID MatchID
	Player  PlayerID
	Move    rules.Move
}

func (SubmitMoveMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session disconnects.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}
