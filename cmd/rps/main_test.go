package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/rules"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"[::1]:8080", "8080"},
		{"2222", "2222"},
	}

	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.expected {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}

func TestRunVariants(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	runVariants(cmd, nil)

	text := out.String()
	for _, want := range []string{
		"normal",
		"spock-lizard",
		"fire-water",
		"Rock (R)",
		"Spock (O)",
		"Water (W)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("variants output missing %q:\n%s", want, text)
		}
	}
}

func TestPrintStandingsEmpty(t *testing.T) {
	var out bytes.Buffer
	printStandings(&out, rules.VariantFireWater, nil)

	text := out.String()
	if !strings.Contains(text, "No games recorded yet.") {
		t.Errorf("printStandings() = %q, expected empty-board notice", text)
	}
	if !strings.Contains(text, "rps play --variant fire-water") {
		t.Errorf("printStandings() = %q, expected play hint for fire-water", text)
	}
}

func TestPrintStandings(t *testing.T) {
	var out bytes.Buffer
	printStandings(&out, rules.VariantNormal, []storage.PlayerStanding{
		{Rank: 1, Player: storage.Player{ID: "p1", Name: "ann"}, Games: 2, Wins: 3, Loses: 1, Draws: 1, WinRate: 0.75},
		{Rank: 2, Player: storage.Player{ID: "p2", Name: "bob"}, Games: 1, Wins: 1, Loses: 3, WinRate: 0.25},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if lines[0] != "Leaderboard - Normal game" {
		t.Errorf("header = %q, expected %q", lines[0], "Leaderboard - Normal game")
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "bob") || !strings.Contains(last, "25.0%") {
		t.Errorf("last row = %q, expected bob at 25.0%%", last)
	}
	if !strings.Contains(lines[len(lines)-2], "75.0%") {
		t.Errorf("first row = %q, expected 75.0%%", lines[len(lines)-2])
	}
}
