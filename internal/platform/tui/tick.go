// Package tui runs games in the terminal with Bubble Tea.
// It maps keys and mouse clicks to actions, drives the fixed tick loop,
// records finished sessions, and serves the same flow over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// TickMsg drives one fixed simulation step.
type TickMsg time.Time

// nextTick schedules a TickMsg one simulation interval from now.
// The loop keeps running while a game is paused.
func nextTick(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.Interval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
