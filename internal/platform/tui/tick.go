// Package tui hosts the engine in a terminal: a Bubble Tea program that
// schedules frames itself, the same model served per SSH session, and a raw
// mode host for the engine's own blocking loop.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the Bubble Tea frame rate in ticks per second.
const DefaultTickRate = 60

// TickMsg is sent to trigger an engine frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickTimer is the host timer of the Bubble Tea hosts: milliseconds between
// the first and the latest tick message.
type tickTimer struct {
	epoch time.Time
	last  time.Time
}

func (t *tickTimer) observe(ts time.Time) {
	if t.epoch.IsZero() {
		t.epoch = ts
	}
	t.last = ts
}

func (t *tickTimer) millis() float64 {
	if t.epoch.IsZero() {
		return 0
	}
	return float64(t.last.Sub(t.epoch)) / float64(time.Millisecond)
}
