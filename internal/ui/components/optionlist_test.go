package components

import (
	"strings"
	"testing"
	"time"
)

func TestOptionList_MarkSolving(t *testing.T) {
	l := OptionList{
		Options:  []string{"a", "b", "c"},
		Selected: []int{1},
		Answer:   []int{0, 1},
	}
	want := []OptionMark{MarkNone, MarkSelected, MarkNone}
	for i, w := range want {
		if got := l.Mark(i); got != w {
			t.Errorf("Mark(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestOptionList_MarkReviewing(t *testing.T) {
	l := OptionList{
		Options:   []string{"a", "b", "c", "d"},
		Selected:  []int{1, 2},
		Answer:    []int{0, 1},
		Reviewing: true,
	}
	want := []OptionMark{MarkMissed, MarkCorrect, MarkWrong, MarkNone}
	for i, w := range want {
		if got := l.Mark(i); got != w {
			t.Errorf("Mark(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestOptionList_View(t *testing.T) {
	l := OptionList{Options: []string{"first", "second"}, Cursor: 1}
	out := l.View()
	if !strings.Contains(out, "1) first") || !strings.Contains(out, "2) second") {
		t.Errorf("options not numbered from 1:\n%s", out)
	}
	if !strings.Contains(out, "▸") {
		t.Error("cursor not rendered while solving")
	}

	l.Reviewing = true
	l.Answer = []int{0}
	out = l.View()
	if strings.Contains(out, "▸") {
		t.Error("cursor rendered while reviewing")
	}
	if !strings.Contains(out, "missed") {
		t.Error("unchosen answer not flagged as missed")
	}
}

func TestCountdownBar(t *testing.T) {
	out := CountdownBar(12*time.Second+300*time.Millisecond, 20*time.Second, 50)
	if !strings.Contains(out, "13s") {
		t.Errorf("expected remaining seconds rounded up, got %q", out)
	}
	out = CountdownBar(0, 20*time.Second, 50)
	if !strings.Contains(out, " 0s") {
		t.Errorf("expected 0s at expiry, got %q", out)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "On"},
	})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want first enabled item", m.Selected)
	}
}
