package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestMarkdown_StripsMarkup(t *testing.T) {
	got := Markdown("**Maps, slices** are `nil`-comparable.", 60)

	for _, raw := range []string{"**", "`"} {
		if strings.Contains(got, raw) {
			t.Errorf("rendered text still contains %q: %q", raw, got)
		}
	}
	for _, want := range []string{"Maps, slices", "nil"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered text missing %q: %q", want, got)
		}
	}
}

func TestMarkdown_WrapsToWidth(t *testing.T) {
	src := strings.Repeat("channels carry values between goroutines ", 6)
	got := Markdown(src, 30)

	for _, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("line width %d exceeds 30: %q", w, line)
		}
	}
	if strings.Count(got, "\n") == 0 {
		t.Error("expected long text to wrap onto several lines")
	}
}

func TestMarkdown_Empty(t *testing.T) {
	if got := Markdown("  ", 40); got != "" {
		t.Errorf("Markdown(blank) = %q, want empty", got)
	}
}
