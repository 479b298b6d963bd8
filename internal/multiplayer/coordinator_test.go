package multiplayer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

const eventTimeout = 2 * time.Second

// nextEvent returns the next event of type T, skipping others.
func nextEvent[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	deadline := time.After(eventTimeout)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case <-deadline:
			var zero T
			t.Fatalf("session %s: timed out waiting for %T", s.ID(), zero)
			return zero
		}
	}
}

type memorySaver struct {
	mu      sync.Mutex
	results []MatchResultData
	err     error
}

func (m *memorySaver) SaveMatchResult(r MatchResultData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return m.err
}

func (m *memorySaver) all() []MatchResultData {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MatchResultData, len(m.results))
	copy(out, m.results)
	return out
}

type fixture struct {
	coord *Coordinator
	saver *memorySaver
	host  *ChannelSession
	guest *ChannelSession
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	registry := NewSessionRegistry()
	coord := NewCoordinator(CoordinatorConfig{BestOf: 3}, registry)
	saver := &memorySaver{}
	coord.SetResultSaver(saver)
	coord.Start()
	t.Cleanup(coord.Stop)

	host := NewChannelSession("host", "alice", 64)
	guest := NewChannelSession("guest", "bob", 64)
	registry.Register(host)
	registry.Register(guest)

	return &fixture{coord: coord, saver: saver, host: host, guest: guest}
}

// startMatch hosts a lobby with host, joins it with guest and returns the match ID.
func (f *fixture) startMatch(t *testing.T, v rules.Variant, bestOf int) MatchID {
	t.Helper()
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: v, BestOf: bestOf})
	created := nextEvent[LobbyCreatedEvent](t, f.host)
	if len(created.Code) != 6 {
		t.Fatalf("lobby code %q, expected 6 characters", created.Code)
	}
	if created.Variant != v {
		t.Errorf("LobbyCreatedEvent.Variant = %v, expected %v", created.Variant, v)
	}

	f.coord.Send(JoinLobbyMsg{SessionID: f.guest.ID(), Code: created.Code})

	joined := nextEvent[LobbyJoinedEvent](t, f.guest)
	if joined.Side != Player2 || joined.OpponentName != "alice" {
		t.Errorf("guest LobbyJoinedEvent = %+v", joined)
	}

	hostStart := nextEvent[MatchStartedEvent](t, f.host)
	guestStart := nextEvent[MatchStartedEvent](t, f.guest)
	if hostStart.MatchID != guestStart.MatchID {
		t.Fatalf("match IDs differ: %s vs %s", hostStart.MatchID, guestStart.MatchID)
	}
	if hostStart.Side != Player1 || guestStart.Side != Player2 {
		t.Errorf("sides = %v/%v, expected Player1/Player2", hostStart.Side, guestStart.Side)
	}
	if guestStart.OpponentName != "alice" || hostStart.OpponentName != "bob" {
		t.Errorf("opponent names = %q/%q", hostStart.OpponentName, guestStart.OpponentName)
	}
	return hostStart.MatchID
}

func (f *fixture) playRound(t *testing.T, id MatchID, m1, m2 rules.Move) RoundResolvedEvent {
	t.Helper()
	f.coord.Send(SubmitMoveMsg{MatchID: id, Player: Player1, Move: m1})
	f.coord.Send(SubmitMoveMsg{MatchID: id, Player: Player2, Move: m2})
	resolved := nextEvent[RoundResolvedEvent](t, f.host)
	guestView := nextEvent[RoundResolvedEvent](t, f.guest)
	if resolved != guestView {
		t.Errorf("host and guest saw different rounds: %+v vs %+v", resolved, guestView)
	}
	return resolved
}

func TestLobbyCreateAndJoin(t *testing.T) {
	f := newFixture(t)
	f.startMatch(t, rules.VariantNormal, 3)

	if f.coord.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d, expected 0 after match start", f.coord.LobbyCount())
	}
	if f.coord.MatchCount() != 1 {
		t.Errorf("MatchCount() = %d, expected 1", f.coord.MatchCount())
	}
}

func TestJoinErrors(t *testing.T) {
	f := newFixture(t)

	f.coord.Send(JoinLobbyMsg{SessionID: f.guest.ID(), Code: "NOPE00"})
	if e := nextEvent[LobbyErrorEvent](t, f.guest); e.Message != "Lobby not found" {
		t.Errorf("Message = %q, expected Lobby not found", e.Message)
	}

	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: rules.VariantNormal})
	created := nextEvent[LobbyCreatedEvent](t, f.host)
	if created.BestOf != 3 {
		t.Errorf("BestOf = %d, expected coordinator default 3", created.BestOf)
	}

	f.coord.Send(JoinLobbyMsg{SessionID: f.host.ID(), Code: created.Code})
	if e := nextEvent[LobbyErrorEvent](t, f.host); e.Message != "Already in a lobby" {
		t.Errorf("Message = %q, expected Already in a lobby", e.Message)
	}

	f.coord.Send(CreateLobbyMsg{SessionID: f.guest.ID(), Variant: rules.VariantNone})
	if e := nextEvent[LobbyErrorEvent](t, f.guest); e.Message != "Choose a variant first" {
		t.Errorf("Message = %q", e.Message)
	}

	f.coord.Send(CreateLobbyMsg{SessionID: f.guest.ID(), Variant: rules.VariantNormal, BestOf: 4})
	if e := nextEvent[LobbyErrorEvent](t, f.guest); e.Message != "Best-of must be odd" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestJoinCodeIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: rules.VariantFireWater, BestOf: 1})
	created := nextEvent[LobbyCreatedEvent](t, f.host)

	lower := []rune(created.Code)
	for i, r := range lower {
		if r >= 'A' && r <= 'Z' {
			lower[i] = r + ('a' - 'A')
		}
	}
	f.coord.Send(JoinLobbyMsg{SessionID: f.guest.ID(), Code: " " + string(lower) + " "})
	start := nextEvent[MatchStartedEvent](t, f.guest)
	if start.Variant != rules.VariantFireWater || start.BestOf != 1 {
		t.Errorf("MatchStartedEvent = %+v", start)
	}
}

func TestBestOfThreeMatch(t *testing.T) {
	f := newFixture(t)
	id := f.startMatch(t, rules.VariantNormal, 3)

	r := f.playRound(t, id, rules.Rock, rules.Scissors)
	if r.Outcome != rules.Win || r.Winner != Player1 || r.Score1 != 1 || r.Score2 != 0 {
		t.Errorf("round 1 = %+v", r)
	}
	if r.Phrase != "Rock crushes Scissors." {
		t.Errorf("Phrase = %q", r.Phrase)
	}
	if r.OutcomeFor(Player2) != rules.Lose {
		t.Errorf("OutcomeFor(Player2) = %v, expected lose", r.OutcomeFor(Player2))
	}

	// Draws do not count toward the target.
	r = f.playRound(t, id, rules.Paper, rules.Paper)
	if r.Outcome != rules.Draw || r.Winner != PlayerNone || r.Score1 != 1 {
		t.Errorf("round 2 = %+v", r)
	}

	r = f.playRound(t, id, rules.Rock, rules.Paper)
	if r.Winner != Player2 || r.Score2 != 1 || r.Round != 3 {
		t.Errorf("round 3 = %+v", r)
	}

	f.playRound(t, id, rules.Scissors, rules.Paper)

	end := nextEvent[MatchEndedEvent](t, f.host)
	if end.Reason != MatchEndReasonCompleted || end.Winner != Player1 {
		t.Errorf("MatchEndedEvent = %+v", end)
	}
	if end.Score1 != 2 || end.Score2 != 1 || end.Rounds != 4 {
		t.Errorf("final score = %d-%d in %d rounds", end.Score1, end.Score2, end.Rounds)
	}
	nextEvent[MatchEndedEvent](t, f.guest)

	f.coord.Stop()
	saved := f.saver.all()
	if len(saved) != 1 {
		t.Fatalf("saved %d results, expected 1", len(saved))
	}
	if saved[0].WinnerName != "alice" || saved[0].Variant != rules.VariantNormal || saved[0].Rounds != 4 {
		t.Errorf("saved result = %+v", saved[0])
	}
	if f.coord.MatchCount() != 0 {
		t.Errorf("MatchCount() = %d after end", f.coord.MatchCount())
	}
}

func TestIllegalMoveRejected(t *testing.T) {
	f := newFixture(t)
	id := f.startMatch(t, rules.VariantNormal, 1)

	f.coord.Send(SubmitMoveMsg{MatchID: id, Player: Player2, Move: rules.Spock})
	rej := nextEvent[MoveRejectedEvent](t, f.guest)
	if rej.Move != rules.Spock {
		t.Errorf("rejected move = %v, expected Spock", rej.Move)
	}

	f.coord.Send(SubmitMoveMsg{MatchID: id, Player: Player2, Move: rules.Rock})
	locked := nextEvent[MoveLockedEvent](t, f.host)
	if locked.Player != Player2 || locked.Round != 1 {
		t.Errorf("MoveLockedEvent = %+v", locked)
	}

	f.coord.Send(SubmitMoveMsg{MatchID: id, Player: Player2, Move: rules.Paper})
	if rej := nextEvent[MoveRejectedEvent](t, f.guest); rej.Reason != "Move already locked" {
		t.Errorf("Reason = %q", rej.Reason)
	}

	f.coord.Send(SubmitMoveMsg{MatchID: id, Player: Player1, Move: rules.Paper})
	r := nextEvent[RoundResolvedEvent](t, f.guest)
	if r.Move2 != rules.Rock || r.Winner != Player1 {
		t.Errorf("resolved = %+v, expected the locked Rock to lose", r)
	}

	end := nextEvent[MatchEndedEvent](t, f.guest)
	if end.Winner != Player1 || end.Score1 != 1 {
		t.Errorf("best-of-1 end = %+v", end)
	}
}

func TestDisconnectAwardsOpponent(t *testing.T) {
	f := newFixture(t)
	f.startMatch(t, rules.VariantSpockLizard, 3)

	f.host.Close()

	end := nextEvent[MatchEndedEvent](t, f.guest)
	if end.Reason != MatchEndReasonDisconnect || end.Winner != Player2 {
		t.Errorf("MatchEndedEvent = %+v, expected disconnect win for Player2", end)
	}
}

func TestLeaveMatch(t *testing.T) {
	f := newFixture(t)
	id := f.startMatch(t, rules.VariantNormal, 3)

	f.coord.Send(LeaveMatchMsg{SessionID: f.guest.ID(), MatchID: id})
	end := nextEvent[MatchEndedEvent](t, f.host)
	if end.Winner != Player1 {
		t.Errorf("Winner = %v, expected Player1", end.Winner)
	}
}

func TestCancelAndLeaveLobby(t *testing.T) {
	f := newFixture(t)

	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: rules.VariantNormal})
	created := nextEvent[LobbyCreatedEvent](t, f.host)

	f.coord.Send(CancelLobbyMsg{SessionID: f.guest.ID(), Code: created.Code})
	f.coord.Send(CancelLobbyMsg{SessionID: f.host.ID(), Code: created.Code})

	// Messages are processed in order; a create after the cancel succeeds.
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: rules.VariantNormal})
	again := nextEvent[LobbyCreatedEvent](t, f.host)
	if n := f.coord.LobbyCount(); n != 1 {
		t.Errorf("LobbyCount() = %d, expected 1 after cancel and re-create", n)
	}
	if _, ok := f.coord.GetLobby(again.Code); !ok {
		t.Errorf("GetLobby(%q) not found", again.Code)
	}

	f.coord.Send(LeaveLobbyMsg{SessionID: f.host.ID(), Code: again.Code})
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: rules.VariantNormal})
	nextEvent[LobbyCreatedEvent](t, f.host)
	if n := f.coord.LobbyCount(); n != 1 {
		t.Errorf("LobbyCount() = %d, expected 1", n)
	}
}

func TestExpiredLobbyCleanup(t *testing.T) {
	f := newFixture(t)
	f.coord.Send(CreateLobbyMsg{SessionID: f.host.ID(), Variant: rules.VariantNormal})
	nextEvent[LobbyCreatedEvent](t, f.host)

	f.coord.cleanupExpiredLobbies(time.Now().Add(time.Hour))

	if e := nextEvent[LobbyErrorEvent](t, f.host); e.Message != "Lobby expired" {
		t.Errorf("Message = %q, expected Lobby expired", e.Message)
	}
	if f.coord.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d, expected 0", f.coord.LobbyCount())
	}
}

func TestSaverErrorDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.saver.err = errors.New("disk full")
	id := f.startMatch(t, rules.VariantNormal, 1)

	f.playRound(t, id, rules.Paper, rules.Rock)
	nextEvent[MatchEndedEvent](t, f.host)
}

func TestWinsNeeded(t *testing.T) {
	tests := []struct {
		bestOf, expected int
	}{
		{1, 1}, {3, 2}, {5, 3}, {7, 4}, {0, 1}, {-3, 1},
	}
	for _, tc := range tests {
		if got := WinsNeeded(tc.bestOf); got != tc.expected {
			t.Errorf("WinsNeeded(%d) = %d, expected %d", tc.bestOf, got, tc.expected)
		}
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s", "", 2)
	if s.Name() != "s" {
		t.Errorf("Name() = %q, expected the ID fallback", s.Name())
	}
	s.Send(LobbyErrorEvent{Message: "1"})
	s.Send(LobbyErrorEvent{Message: "2"})
	s.Send(LobbyErrorEvent{Message: "3"})

	first := (<-s.Events()).(LobbyErrorEvent)
	second := (<-s.Events()).(LobbyErrorEvent)
	if first.Message != "2" || second.Message != "3" {
		t.Errorf("events = %q, %q, expected 2, 3", first.Message, second.Message)
	}

	s.Close()
	s.Close()
	s.Send(LobbyErrorEvent{Message: "after close"})
	select {
	case evt := <-s.Events():
		t.Errorf("received %v after Close", evt)
	default:
	}
}
