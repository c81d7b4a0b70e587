package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/quizbit/internal/session"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

// renderQuestionView renders the active question, either while solving or
// while reviewing the graded result.
func (s *SessionScreen) renderQuestionView(st sess.SessionState, width, height int) string {
	q := st.Question
	if q == nil {
		return renderLoading(width, height)
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Info line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", st.Index+1, st.Total))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(answerCountLabel(q.AnswerCount()))
	infoLine := infoLeft
	if pad := cw - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight); pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	if st.Solving() {
		b.WriteString(components.CountdownBar(st.Remaining, st.TimeLimit, cw))
	} else {
		b.WriteString(renderVerdict(st.LastAttempt()))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	list := components.OptionList{
		Options:   q.Options,
		Selected:  st.Selected,
		Answer:    q.Answer,
		Cursor:    s.cursor,
		Reviewing: !st.Solving(),
	}
	if a := st.LastAttempt(); a != nil {
		list.Selected = a.Selected
	}
	b.WriteString(list.View())
	b.WriteString("\n")

	if st.Solving() {
		b.WriteString(s.renderSubmitArea(st))
	} else {
		b.WriteString(renderExplanation(q.Description, cw))
		b.WriteString(theme.Hint.Render("Press Enter to continue"))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderSubmitArea renders the selection counter, guidance and submit button.
func (s *SessionScreen) renderSubmitArea(st sess.SessionState) string {
	k := st.Question.AnswerCount()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d selected", len(st.Selected), k)))
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render(s.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(components.NewButton("Submit", st.CanSubmit()).View())
	return b.String()
}

func renderVerdict(a *sess.Attempt) string {
	switch {
	case a == nil:
		return ""
	case a.TimedOut:
		return theme.Missed.Bold(true).Render("⏱ Time's up!")
	case a.Correct:
		return theme.Correct.Render("✔ Correct!")
	default:
		return theme.Incorrect.Render("✘ Not quite")
	}
}

func renderExplanation(desc string, cw int) string {
	if desc == "" {
		return ""
	}
	// Card border (2) and padding (4).
	return components.Card(components.Markdown(desc, cw-6), cw) + "\n\n"
}

func answerCountLabel(k int) string {
	if k == 1 {
		return "Choose 1 answer"
	}
	return fmt.Sprintf("Choose %d answers", k)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End quiz early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your answers so far will be discarded."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the state before the first question is shown.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Preparing your quiz...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
