package game

import (
	"testing"

	"github.com/vovakirdan/tui-rps/internal/rules"
)

func TestComputerMoveIsLegal(t *testing.T) {
	for _, v := range rules.Variants() {
		g := New(v, 7)
		seen := make(map[rules.Move]bool)
		for i := 0; i < 500; i++ {
			m := g.ComputerMove()
			if !v.Legal(m) {
				t.Fatalf("%v: ComputerMove() = %v, not legal", v, m)
			}
			seen[m] = true
		}
		if len(seen) != v.MaxSlots() {
			t.Errorf("%v: saw %d distinct moves, expected %d", v, len(seen), v.MaxSlots())
		}
	}
}

func TestComputerMoveDeterministic(t *testing.T) {
	a := New(rules.VariantSpockLizard, 99)
	b := New(rules.VariantSpockLizard, 99)
	for i := 0; i < 20; i++ {
		if ma, mb := a.ComputerMove(), b.ComputerMove(); ma != mb {
			t.Fatalf("move %d: %v != %v with the same seed", i, ma, mb)
		}
	}
}

func TestPlayAgainst(t *testing.T) {
	g := New(rules.VariantNormal, 1)

	rounds := []struct {
		player, computer rules.Move
		outcome          rules.Outcome
		phrase           string
	}{
		{rules.Rock, rules.Scissors, rules.Win, "Rock crushes Scissors."},
		{rules.Rock, rules.Rock, rules.Draw, ""},
		{rules.Rock, rules.Paper, rules.Lose, "Paper covers Rock."},
		{rules.Scissors, rules.Paper, rules.Win, "Scissors cuts Paper."},
	}

	for i, tc := range rounds {
		r := g.PlayAgainst(tc.player, tc.computer)
		if r.Outcome != tc.outcome {
			t.Errorf("round %d: Outcome = %v, expected %v", i+1, r.Outcome, tc.outcome)
		}
		if r.Phrase != tc.phrase {
			t.Errorf("round %d: Phrase = %q, expected %q", i+1, r.Phrase, tc.phrase)
		}
		if r.Number != i+1 {
			t.Errorf("round %d: Number = %d", i+1, r.Number)
		}
	}

	s := g.Stats()
	if s.Wins != 2 || s.Loses != 1 || s.Draws != 1 || s.Total() != 4 {
		t.Errorf("Stats() = %+v, expected 2/1/1", s)
	}
	if s.WinRate() < 0.66 || s.WinRate() > 0.67 {
		t.Errorf("WinRate() = %v, expected 2/3", s.WinRate())
	}

	last, ok := g.LastRound()
	if !ok || last.Player != rules.Scissors {
		t.Errorf("LastRound() = (%+v, %v)", last, ok)
	}
	if len(g.History()) != 4 {
		t.Errorf("len(History()) = %d, expected 4", len(g.History()))
	}
}

func TestPlayRecordsStats(t *testing.T) {
	g := New(rules.VariantFireWater, 3)
	for i := 0; i < 30; i++ {
		r := g.Play(rules.Water)
		if r.Computer == rules.Water && r.Outcome != rules.Draw {
			t.Errorf("Water vs Water = %v, expected draw", r.Outcome)
		}
	}
	if g.Stats().Total() != 30 {
		t.Errorf("Total() = %d, expected 30", g.Stats().Total())
	}
}

func TestReset(t *testing.T) {
	g := New(rules.VariantNormal, 1)
	g.PlayAgainst(rules.Paper, rules.Rock)
	g.Reset()

	if g.Stats().Total() != 0 {
		t.Errorf("Total() after Reset = %d, expected 0", g.Stats().Total())
	}
	if _, ok := g.LastRound(); ok {
		t.Error("LastRound() after Reset should be empty")
	}
	if r := g.PlayAgainst(rules.Paper, rules.Rock); r.Number != 1 {
		t.Errorf("first round after Reset has Number %d, expected 1", r.Number)
	}
}

func TestHistoryIsCopy(t *testing.T) {
	g := New(rules.VariantNormal, 1)
	g.PlayAgainst(rules.Paper, rules.Rock)
	h := g.History()
	h[0].Outcome = rules.Lose
	if last, _ := g.LastRound(); last.Outcome != rules.Win {
		t.Error("modifying History() changed the session")
	}
}

func TestNewPanicsOnNone(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(VariantNone) did not panic")
		}
	}()
	New(rules.VariantNone, 1)
}
