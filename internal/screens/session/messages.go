package session

import (
	"time"

	tea "charm.land/bubbletea/v2"

	sess "github.com/abhisek/quizbit/internal/session"
)

// countdownExpiredMsg is sent when the countdown armed for a question
// elapses. The ID tells a live countdown from one that was since cancelled.
type countdownExpiredMsg struct {
	ID sess.CountdownID
}

// timerTickMsg is sent every second while a countdown is live to redraw the
// countdown bar.
type timerTickMsg struct {
	ID sess.CountdownID
	At time.Time
}

// expireCmd schedules the auto-submit for countdown c.
func expireCmd(c sess.Countdown) tea.Cmd {
	return tea.Tick(c.Limit, func(time.Time) tea.Msg {
		return countdownExpiredMsg{ID: c.ID}
	})
}

// tickCmd returns a 1-second tick command bound to countdown id.
func tickCmd(id sess.CountdownID) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{ID: id, At: t}
	})
}
