// Package game runs a single-player rock-paper-scissors session against the
// computer: it draws the computer's move, resolves rounds and keeps the
// running statistics.
package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

// Round is one resolved exchange between the player and the computer.
type Round struct {
	Number   int
	Variant  rules.Variant
	Player   rules.Move
	Computer rules.Move
	Outcome  rules.Outcome // From the player's perspective
	Phrase   string
	PlayedAt time.Time
}

// Stats counts outcomes since the last reset.
type Stats struct {
	Wins  int
	Loses int
	Draws int
}

// Total returns the number of rounds played.
func (s Stats) Total() int {
	return s.Wins + s.Loses + s.Draws
}

// Record adds one outcome.
func (s *Stats) Record(o rules.Outcome) {
	switch o {
	case rules.Win:
		s.Wins++
	case rules.Lose:
		s.Loses++
	case rules.Draw:
		s.Draws++
	}
}

// WinRate returns wins divided by decided rounds, 0 when nothing was decided.
func (s Stats) WinRate() float64 {
	decided := s.Wins + s.Loses
	if decided == 0 {
		return 0
	}
	return float64(s.Wins) / float64(decided)
}

// Game is a session against the computer. It is not safe for concurrent use;
// one front-end goroutine owns it.
type Game struct {
	variant rules.Variant
	rng     *rand.Rand
	stats   Stats
	history []Round
	now     func() time.Time
}

// New creates a session for variant v. A seed of 0 uses the current time.
// New panics if v is not playable.
func New(v rules.Variant, seed int64) *Game {
	if !v.Valid() {
		panic("game: new session with variant " + v.String())
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		variant: v,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // game randomness, not security
		now:     time.Now,
	}
}

// Variant returns the session's variant.
func (g *Game) Variant() rules.Variant {
	return g.variant
}

// ComputerMove draws a slot uniformly from 1..MaxSlots and maps it to a move.
func (g *Game) ComputerMove() rules.Move {
	slot := g.rng.Intn(g.variant.MaxSlots()) + 1
	m, _ := g.variant.SlotToMove(slot)
	return m
}

// Play resolves player against a freshly drawn computer move.
func (g *Game) Play(player rules.Move) Round {
	return g.PlayAgainst(player, g.ComputerMove())
}

// PlayAgainst resolves a round with a known computer move. Both moves must be
// legal for the session's variant.
func (g *Game) PlayAgainst(player, computer rules.Move) Round {
	outcome := rules.Resolve(player, computer, g.variant)
	g.stats.Record(outcome)

	r := Round{
		Number:   len(g.history) + 1,
		Variant:  g.variant,
		Player:   player,
		Computer: computer,
		Outcome:  outcome,
		Phrase:   rules.Phrase(player, computer),
		PlayedAt: g.now(),
	}
	g.history = append(g.history, r)
	return r
}

// Stats returns the current statistics.
func (g *Game) Stats() Stats {
	return g.stats
}

// LastRound returns the most recent round, if any.
func (g *Game) LastRound() (Round, bool) {
	if len(g.history) == 0 {
		return Round{}, false
	}
	return g.history[len(g.history)-1], true
}

// History returns a copy of every round since the last reset.
func (g *Game) History() []Round {
	out := make([]Round, len(g.history))
	copy(out, g.history)
	return out
}

// Reset clears the score and history.
func (g *Game) Reset() {
	g.stats = Stats{}
	g.history = nil
}
