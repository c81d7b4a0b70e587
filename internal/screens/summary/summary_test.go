package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbit/internal/router"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/session"
)

func testSummary() *session.SessionSummary {
	return &session.SessionSummary{
		SessionID:      "test-session",
		Duration:       95 * time.Second,
		TotalQuestions: 3,
		TotalCorrect:   1,
		TotalTimedOut:  1,
		Accuracy:       float64(1) / float64(3),
		Results: []session.QuestionResult{
			{Index: 0, Text: "Which keyword starts a goroutine?", Correct: true, Elapsed: 4 * time.Second},
			{Index: 1, Text: "Which types are reference types?", Elapsed: 11 * time.Second},
			{Index: 2, Text: "What does len(nil) panic with?", TimedOut: true, Elapsed: 20 * time.Second},
		},
	}
}

// stubScreen is a minimal screen returned by the retry factory.
type stubScreen struct{}

func (stubScreen) Init() tea.Cmd { return nil }

func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }

func (stubScreen) View(int, int) string { return "retry" }

func (stubScreen) Title() string { return "Quiz" }

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), nil)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary(), nil)
	view := s.View(80, 30)

	for _, want := range []string{
		"Quiz complete!",
		"Duration: 1:35",
		"Correct: 1/3",
		"Timed out: 1",
		"33%",
		"Which keyword starts a goroutine?",
		"time's up",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_DisplayNil(t *testing.T) {
	s := New(nil, nil)
	if got := s.View(80, 24); got != "" {
		t.Errorf("expected empty view for nil summary, got %q", got)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_Retry(t *testing.T) {
	called := 0
	s := New(testSummary(), func() screen.Screen {
		called++
		return stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on R (retry)")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg on retry")
	}
	if msg.Screen.Title() != "Quiz" {
		t.Errorf("replacement screen = %q, want the new session", msg.Screen.Title())
	}
	if called != 1 {
		t.Errorf("retry factory called %d times, want 1", called)
	}
}

func TestSummaryScreen_RetryDisabledWithoutFactory(t *testing.T) {
	s := New(testSummary(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd != nil {
		t.Error("expected no command on R without a retry factory")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if got := len(New(testSummary(), nil).KeyHints()); got != 1 {
		t.Errorf("KeyHints length without retry = %d, want 1", got)
	}
	withRetry := New(testSummary(), func() screen.Screen { return stubScreen{} })
	if got := len(withRetry.KeyHints()); got != 2 {
		t.Errorf("KeyHints length with retry = %d, want 2", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate kept = %q", got)
	}
	if got := truncate("a long question text", 8); got != "a long …" {
		t.Errorf("truncate = %q, want %q", got, "a long …")
	}
}

func TestRenderRow_Marks(t *testing.T) {
	tests := []struct {
		row    session.QuestionResult
		mark   string
		status string
	}{
		{session.QuestionResult{Index: 0, Text: "q1", Correct: true, Elapsed: 4 * time.Second}, "✔", "4.0s"},
		{session.QuestionResult{Index: 1, Text: "q2", Elapsed: 11 * time.Second}, "✘", "11.0s"},
		{session.QuestionResult{Index: 2, Text: "q3", TimedOut: true, Elapsed: 20 * time.Second}, "⏱", "time's up"},
	}

	for _, tt := range tests {
		got := renderRow(tt.row, 60)
		if !strings.Contains(got, tt.mark) || !strings.Contains(got, tt.status) {
			t.Errorf("row %d = %q, want mark %q and status %q", tt.row.Index, got, tt.mark, tt.status)
		}
		if strings.Contains(got, "skipped") {
			t.Errorf("row %d rendered as skipped: %q", tt.row.Index, got)
		}
	}
}
