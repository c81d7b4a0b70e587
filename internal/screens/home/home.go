package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbit/internal/router"
	"github.com/abhisek/quizbit/internal/screen"
	sessionscreen "github.com/abhisek/quizbit/internal/screens/session"
	sess "github.com/abhisek/quizbit/internal/session"
	"github.com/abhisek/quizbit/internal/ui/components"
	"github.com/abhisek/quizbit/internal/ui/layout"
	"github.com/abhisek/quizbit/internal/ui/theme"
)

// HomeScreen is the main menu shown before a quiz starts.
type HomeScreen struct {
	opts       sessionscreen.Options
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. Starting a quiz pushes a session built from opts.
func New(opts sessionscreen.Options) *HomeScreen {
	menuLabels := []string{"START QUIZ", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(opts)}
			}
		}, Disabled: len(opts.Questions) == 0},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		opts:       opts,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.Highlight).
			Bold(true).
			Render("★ READY TO QUIZ? ★"),
		components.Card(h.renderStats(), cw),
		h.renderMenu(cw),
	}
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = sections[1:]
	}

	return components.CenterFrame(strings.Join(sections, "\n\n"), width, height)
}

// renderStats describes the loaded question set.
func (h *HomeScreen) renderStats() string {
	total := len(h.opts.Questions)
	multi := 0
	for _, q := range h.opts.Questions {
		if q.AnswerCount() > 1 {
			multi++
		}
	}
	limit := h.opts.TimeLimit
	if limit <= 0 {
		limit = sess.DefaultTimeLimit
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	lines := []string{
		label.Render("Questions     ") + value.Render(fmt.Sprintf("%d", total)),
		label.Render("Multi-answer  ") + value.Render(fmt.Sprintf("%d", multi)),
		label.Render("Time limit    ") + value.Render(fmt.Sprintf("%s per question", limit)),
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) renderMenu(cw int) string {
	buttons := make([]string, 0, len(h.menuLabels))
	for i, label := range h.menuLabels {
		if h.menu.Items[i].Disabled {
			buttons = append(buttons, theme.Dimmed.Width(cw-2).Align(lipgloss.Center).Render(label+" (no questions)"))
			continue
		}
		buttons = append(buttons, components.MenuButton(label, i == h.menu.Selected, cw-2))
	}
	return strings.Join(buttons, "\n")
}
