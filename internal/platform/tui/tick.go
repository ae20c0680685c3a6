// Package tui provides the Bubble Tea integration for the grammar
// arcade: the terminal UI loop, input mapping, the results board and
// the SSH play server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after
// one tick interval. The model reschedules it only while a session is
// actually playing, so leaving the playing state releases the timer.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
