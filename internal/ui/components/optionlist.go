package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/ui/theme"
)

// OptionMark classifies how an option is drawn.
type OptionMark int

const (
	MarkNone     OptionMark = iota // Unselected while solving, or irrelevant in review
	MarkSelected                   // Chosen while solving
	MarkCorrect                    // Chosen and correct
	MarkWrong                      // Chosen but not an answer
	MarkMissed                     // An answer that was not chosen
)

// OptionList renders the options of one question. While solving it shows the
// cursor and the current selection; once reviewing it compares the selection
// against the answer.
type OptionList struct {
	Options   []string
	Selected  []int
	Answer    []int
	Cursor    int
	Reviewing bool
}

// Mark returns the mark for option i.
func (l OptionList) Mark(i int) OptionMark {
	chosen := contains(l.Selected, i)
	if !l.Reviewing {
		if chosen {
			return MarkSelected
		}
		return MarkNone
	}

	answer := contains(l.Answer, i)
	switch {
	case chosen && answer:
		return MarkCorrect
	case chosen:
		return MarkWrong
	case answer:
		return MarkMissed
	default:
		return MarkNone
	}
}

// View renders the option list, one option per line.
func (l OptionList) View() string {
	var b strings.Builder
	for i, opt := range l.Options {
		prefix := "  "
		if i == l.Cursor && !l.Reviewing {
			prefix = "▸ "
		}

		mark := l.Mark(i)
		line := fmt.Sprintf("%s%s %d) %s", prefix, markGlyph(mark), i+1, opt)
		b.WriteString(markStyle(mark, i == l.Cursor && !l.Reviewing).Render(line))
		if mark == MarkMissed {
			b.WriteString(theme.Missed.Render("  (missed)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func markGlyph(m OptionMark) string {
	switch m {
	case MarkSelected:
		return "[x]"
	case MarkCorrect:
		return "[✔]"
	case MarkWrong:
		return "[✘]"
	case MarkMissed:
		return "[ ]"
	default:
		return "[ ]"
	}
}

func markStyle(m OptionMark, cursor bool) lipgloss.Style {
	switch m {
	case MarkSelected:
		return theme.Selected
	case MarkCorrect:
		return theme.Correct
	case MarkWrong:
		return theme.Incorrect
	case MarkMissed:
		return theme.Missed
	}
	if cursor {
		return theme.Cursor
	}
	return theme.Unselected
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
