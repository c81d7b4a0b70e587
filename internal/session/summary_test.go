package session

import (
	"testing"
	"time"
)

func TestBuildSummary(t *testing.T) {
	qs := testQuestions()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c, err := NewController(qs, WithClock(clock.Now))
	if err != nil {
		t.Fatal(err)
	}

	c.Start()
	clock.Advance(3 * time.Second)
	c.Toggle(0, 1)
	c.Submit()

	c.Advance()
	clock.Advance(DefaultTimeLimit)
	c.Timeout()

	c.Advance()
	clock.Advance(time.Second)
	c.Toggle(2, 0)
	c.Submit()
	c.Advance()

	sum := BuildSummary(c.State(), c.Questions(), "sess-1", clock.Now())

	if sum.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want %q", sum.SessionID, "sess-1")
	}
	if sum.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", sum.TotalQuestions)
	}
	if sum.TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", sum.TotalCorrect)
	}
	if sum.TotalTimedOut != 1 {
		t.Errorf("TotalTimedOut = %d, want 1", sum.TotalTimedOut)
	}
	if want := 1.0 / 3.0; sum.Accuracy != want {
		t.Errorf("Accuracy = %f, want %f", sum.Accuracy, want)
	}
	if want := 24 * time.Second; sum.Duration != want {
		t.Errorf("Duration = %s, want %s", sum.Duration, want)
	}
	if len(sum.Results) != 3 {
		t.Fatalf("Results = %d rows, want 3", len(sum.Results))
	}

	first := sum.Results[0]
	if !first.Correct || first.TimedOut || first.Elapsed != 3*time.Second {
		t.Errorf("row 0 = %+v, want correct answered in 3s", first)
	}
	second := sum.Results[1]
	if !second.TimedOut || second.Correct {
		t.Errorf("row 1 = %+v, want timed out", second)
	}
	if sum.Results[2].Text != qs[2].Text {
		t.Errorf("row 2 text = %q, want %q", sum.Results[2].Text, qs[2].Text)
	}
}

func TestBuildSummary_Unfinished(t *testing.T) {
	c, err := NewController(testQuestions())
	if err != nil {
		t.Fatal(err)
	}
	c.Start()
	c.Toggle(0, 1)
	c.Submit()

	sum := BuildSummary(c.State(), c.Questions(), "", time.Now())
	if len(sum.Results) != 3 {
		t.Fatalf("Results = %d rows, want 3", len(sum.Results))
	}
	if r := sum.Results[2]; r.Correct || r.TimedOut || r.Elapsed != 0 {
		t.Errorf("row 2 = %+v, want untouched", sum.Results[2])
	}
	if sum.TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", sum.TotalCorrect)
	}
}
