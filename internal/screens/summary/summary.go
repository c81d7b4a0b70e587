package summary

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/router"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/session"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/layout"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

// SummaryScreen displays the results of a finished quiz.
type SummaryScreen struct {
	summary *session.SessionSummary
	retry   func() screen.Screen
	keys    keyMap
}

type keyMap struct {
	Retry key.Binding
	Home  key.Binding
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. retry builds a fresh session screen and
// may be nil, in which case retrying is not offered.
func New(summary *session.SessionSummary, retry func() screen.Screen) *SummaryScreen {
	s := &SummaryScreen{
		summary: summary,
		retry:   retry,
		keys: keyMap{
			Retry: key.NewBinding(
				key.WithKeys("r", "R"),
				key.WithHelp("R", "Retry"),
			),
			Home: key.NewBinding(
				key.WithKeys("enter", "esc"),
				key.WithHelp("Enter", "Home"),
			),
		},
	}
	s.keys.Retry.SetEnabled(retry != nil)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{s.keys.Retry, s.keys.Home} {
		if !b.Enabled() {
			continue
		}
		out = append(out, layout.KeyHint{Key: b.Help().Key, Description: b.Help().Desc})
	}
	return out
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.keys.Retry):
		next := s.retry()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case key.Matches(kmsg, s.keys.Home):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Title.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	// Duration.
	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	// Stats line.
	statsLine := fmt.Sprintf("Correct: %d/%d        Timed out: %d",
		sum.TotalCorrect, sum.TotalQuestions, sum.TotalTimedOut)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	bar := components.NewProgressBar("Accuracy", sum.Accuracy, true, cw)
	bar.Color = accuracyColor(sum.Accuracy)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	// Questions divider.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Questions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	var rows strings.Builder
	for _, r := range sum.Results {
		rows.WriteString(renderRow(r, cw))
		rows.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rows.String()))

	return b.String()
}

// renderRow renders one per-question line, truncating long question text.
func renderRow(r session.QuestionResult, cw int) string {
	var mark, status string
	style := theme.Incorrect
	switch {
	case r.TimedOut:
		mark, status, style = "⏱", "time's up", theme.Missed
	case r.Correct:
		mark, status, style = "✔", fmt.Sprintf("%.1fs", r.Elapsed.Seconds()), theme.Correct
	default:
		mark, status = "✘", fmt.Sprintf("%.1fs", r.Elapsed.Seconds())
	}

	prefix := fmt.Sprintf("%s %2d. ", mark, r.Index+1)
	textWidth := cw - lipgloss.Width(prefix) - len(status) - 2
	text := truncate(r.Text, textWidth)
	pad := cw - lipgloss.Width(prefix) - lipgloss.Width(text) - len(status)
	if pad < 1 {
		pad = 1
	}
	return style.Render(prefix) + theme.Body.Render(text) + strings.Repeat(" ", pad) +
		theme.Dimmed.Render(status)
}

func truncate(s string, w int) string {
	if w <= 1 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func accuracyColor(acc float64) color.Color {
	switch {
	case acc >= 0.8:
		return theme.Success
	case acc >= 0.5:
		return theme.Secondary
	default:
		return theme.Error
	}
}
