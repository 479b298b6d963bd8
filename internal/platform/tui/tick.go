// Package tui provides the Bubble Tea front-end: menu, game, overview,
// scoreboard, settings, credits and online screens, plus the Wish SSH server
// that serves them remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the reveal countdown. Tag identifies the countdown that
// scheduled it so stale ticks from an abandoned countdown are ignored.
type TickMsg struct {
	Tag  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration, tag int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Tag: tag, Time: t}
	})
}

// closeMsg ends the program after the closing screen was shown.
type closeMsg struct{}

func closeCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return closeMsg{}
	})
}
