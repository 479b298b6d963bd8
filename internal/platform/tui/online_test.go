package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/multiplayer"
	"github.com/vovakirdan/tui-rps/internal/rules"
)

const eventTimeout = 2 * time.Second

type onlineFixture struct {
	coord *multiplayer.Coordinator
	host  *multiplayer.ChannelSession
	guest *multiplayer.ChannelSession
}

func newOnlineFixture(t *testing.T) *onlineFixture {
	t.Helper()
	registry := multiplayer.NewSessionRegistry()
	coord := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), registry)
	coord.Start()
	t.Cleanup(coord.Stop)

	host := multiplayer.NewChannelSession(multiplayer.NewSessionID(), "alice", 16)
	guest := multiplayer.NewChannelSession(multiplayer.NewSessionID(), "bob", 16)
	registry.Register(host)
	registry.Register(guest)
	t.Cleanup(host.Close)
	t.Cleanup(guest.Close)

	return &onlineFixture{coord: coord, host: host, guest: guest}
}

// pumpLobby feeds session events into m until done reports true.
func pumpLobby(t *testing.T, s *multiplayer.ChannelSession, m OnlineLobbyModel, done func(OnlineLobbyModel) bool) OnlineLobbyModel {
	t.Helper()
	deadline := time.After(eventTimeout)
	for !done(m) {
		select {
		case evt := <-s.Events():
			next, _ := m.Update(evt)
			m = next.(OnlineLobbyModel)
		case <-deadline:
			t.Fatalf("session %s: timed out, lobby state %v", s.ID(), m.State())
		}
	}
	return m
}

// pumpMatch feeds session events into m until done reports true.
func pumpMatch(t *testing.T, s *multiplayer.ChannelSession, m OnlineMatchModel, done func(OnlineMatchModel) bool) OnlineMatchModel {
	t.Helper()
	deadline := time.After(eventTimeout)
	for !done(m) {
		select {
		case evt := <-s.Events():
			next, _ := m.Update(evt)
			m = next.(OnlineMatchModel)
		case <-deadline:
			t.Fatalf("session %s: timed out waiting for match event", s.ID())
		}
	}
	return m
}

func lobbyKeys(m OnlineLobbyModel, keys ...string) OnlineLobbyModel {
	for _, k := range keys {
		next, _ := m.Update(runeKey(k))
		m = next.(OnlineLobbyModel)
	}
	return m
}

// startMatch hosts on f.host, joins on f.guest and returns both match screens.
func startMatch(t *testing.T, f *onlineFixture, v rules.Variant) (OnlineMatchModel, OnlineMatchModel) {
	t.Helper()
	host := NewOnlineLobbyModel(f.host.ID(), f.coord, v, 3, 80, 24)
	host = lobbyKeys(host, "h")
	host = pumpLobby(t, f.host, host, func(m OnlineLobbyModel) bool {
		return m.State() == OnlineStateHostWaiting
	})
	code := host.LobbyCode()
	if len(code) != joinCodeLength {
		t.Fatalf("LobbyCode() = %q, expected %d characters", code, joinCodeLength)
	}

	guest := NewOnlineLobbyModel(f.guest.ID(), f.coord, rules.VariantNormal, 3, 80, 24)
	guest = lobbyKeys(guest, "j")
	for _, c := range strings.ToLower(code) {
		guest = lobbyKeys(guest, string(c))
	}
	next, _ := guest.Update(enterKey)
	guest = next.(OnlineLobbyModel)
	if guest.State() != OnlineStateJoinWaiting {
		t.Fatalf("guest state = %v after enter, expected JoinWaiting", guest.State())
	}

	started := func(m OnlineLobbyModel) bool { return m.Started() != nil }
	host = pumpLobby(t, f.host, host, started)
	guest = pumpLobby(t, f.guest, guest, started)

	hs, gs := *host.Started(), *guest.Started()
	if hs.Side != core.Player1 || gs.Side != core.Player2 {
		t.Fatalf("sides = %v/%v, expected Player 1/Player 2", hs.Side, gs.Side)
	}
	if gs.Variant != v {
		t.Fatalf("guest variant = %v, expected host's %v", gs.Variant, v)
	}

	cfg := testConfig()
	return NewOnlineMatchModel(hs, f.host.ID(), f.coord, cfg, nil),
		NewOnlineMatchModel(gs, f.guest.ID(), f.coord, cfg, nil)
}

func submit(m OnlineMatchModel, slot string) OnlineMatchModel {
	next, _ := m.Update(runeKey(slot))
	m = next.(OnlineMatchModel)
	next, _ = m.Update(enterKey)
	return next.(OnlineMatchModel)
}

func TestOnlineLobbyJoinCodeInput(t *testing.T) {
	f := newOnlineFixture(t)
	m := NewOnlineLobbyModel(f.guest.ID(), f.coord, rules.VariantNormal, 3, 80, 24)
	m = lobbyKeys(m, "j", "a", "b", "-", "1", "c", "d", "e", "f", "g")

	if m.joinCodeInput != "AB1CDE" {
		t.Errorf("joinCodeInput = %q, expected %q", m.joinCodeInput, "AB1CDE")
	}

	next, _ := m.Update(escKey)
	m = next.(OnlineLobbyModel)
	if m.State() != OnlineStateChooseMode {
		t.Errorf("state after esc = %v, expected ChooseMode", m.State())
	}
}

func TestOnlineLobbyUnknownCode(t *testing.T) {
	f := newOnlineFixture(t)
	m := NewOnlineLobbyModel(f.guest.ID(), f.coord, rules.VariantNormal, 3, 80, 24)
	m = lobbyKeys(m, "j", "Z", "Z", "Z", "Z", "Z", "Z")
	next, _ := m.Update(enterKey)
	m = next.(OnlineLobbyModel)

	m = pumpLobby(t, f.guest, m, func(m OnlineLobbyModel) bool { return m.lobbyError != "" })
	if m.State() != OnlineStateJoinEnterCode {
		t.Errorf("state = %v after failed join, expected JoinEnterCode", m.State())
	}
}

func TestOnlineLobbyHostCancel(t *testing.T) {
	f := newOnlineFixture(t)
	m := NewOnlineLobbyModel(f.host.ID(), f.coord, rules.VariantFireWater, 3, 80, 24)
	m = lobbyKeys(m, "h")
	m = pumpLobby(t, f.host, m, func(m OnlineLobbyModel) bool { return m.State() == OnlineStateHostWaiting })

	next, _ := m.Update(escKey)
	m = next.(OnlineLobbyModel)
	if m.State() != OnlineStateChooseMode {
		t.Errorf("state after cancel = %v, expected ChooseMode", m.State())
	}

	deadline := time.Now().Add(eventTimeout)
	for f.coord.LobbyCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if f.coord.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d after cancel, expected 0", f.coord.LobbyCount())
	}

	next, _ = m.Update(escKey)
	m = next.(OnlineLobbyModel)
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false after esc on mode screen")
	}
}

func TestOnlineMatchPlaysToCompletion(t *testing.T) {
	f := newOnlineFixture(t)
	host, guest := startMatch(t, f, rules.VariantNormal)

	// Rock beats Scissors twice: best of 3 is decided.
	for round := 1; round <= 2; round++ {
		host = submit(host, "1")
		if host.Locked() != rules.Rock {
			t.Fatalf("round %d: host Locked() = %v, expected Rock", round, host.Locked())
		}
		guest = submit(guest, "3")

		resolved := func(m OnlineMatchModel) bool { return m.last != nil && m.last.Round == round }
		host = pumpMatch(t, f.host, host, resolved)
		guest = pumpMatch(t, f.guest, guest, resolved)

		if got := host.last.OutcomeFor(core.Player1); got != rules.Win {
			t.Errorf("round %d: host outcome = %v, expected win", round, got)
		}
	}

	ended := func(m OnlineMatchModel) bool { return m.Ended() != nil }
	host = pumpMatch(t, f.host, host, ended)
	guest = pumpMatch(t, f.guest, guest, ended)

	if mine, theirs := host.Score(); mine != 2 || theirs != 0 {
		t.Errorf("host Score() = %d-%d, expected 2-0", mine, theirs)
	}
	if mine, theirs := guest.Score(); mine != 0 || theirs != 2 {
		t.Errorf("guest Score() = %d-%d, expected 0-2", mine, theirs)
	}
	if !strings.Contains(host.View(), "You won the match!") {
		t.Error("host view does not announce the win")
	}
	if !strings.Contains(guest.View(), "You lost the match") {
		t.Error("guest view does not announce the loss")
	}

	next, _ := host.Update(enterKey)
	host = next.(OnlineMatchModel)
	if !host.BackToMenu() {
		t.Error("BackToMenu() = false after enter on finished match")
	}
}

func TestOnlineMatchOpponentLeaves(t *testing.T) {
	f := newOnlineFixture(t)
	host, guest := startMatch(t, f, rules.VariantSpockLizard)

	next, _ := guest.Update(escKey)
	guest = next.(OnlineMatchModel)
	if !guest.BackToMenu() {
		t.Fatal("guest BackToMenu() = false after esc")
	}

	host = pumpMatch(t, f.host, host, func(m OnlineMatchModel) bool { return m.Ended() != nil })
	if host.Ended().Winner != core.Player1 {
		t.Errorf("winner = %v, expected Player 1", host.Ended().Winner)
	}
}
