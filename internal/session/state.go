package session

import (
	"slices"
	"time"
)

// DefaultTimeLimit is the countdown applied to every question unless
// overridden with WithTimeLimit.
const DefaultTimeLimit = 20 * time.Second

// Question is one immutable quiz question supplied by the question store.
type Question struct {
	// Text is the prompt shown to the user.
	Text string

	// Options are the selectable answers. An option is identified by its index.
	Options []string

	// Answer holds the indices of the correct options, sorted ascending.
	Answer []int

	// Description explains the answer and is shown once the question is graded.
	Description string
}

// AnswerCount returns how many options must be selected before submitting.
func (q Question) AnswerCount() int {
	return len(q.Answer)
}

// IsAnswer reports whether option i is one of the correct options.
func (q Question) IsAnswer(i int) bool {
	for _, a := range q.Answer {
		if a == i {
			return true
		}
	}
	return false
}

// Phase represents the current phase of the quiz session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Before the first question
	PhaseSolving                 // Countdown live, input accepted
	PhaseReviewing               // Graded or timed out, showing feedback
	PhaseFinished                // Past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseSolving:
		return "solving"
	case PhaseReviewing:
		return "reviewing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// CountdownID identifies one armed countdown. IDs are never reused within a
// session, so a fire carrying an old ID can be told apart from the live one.
type CountdownID uint64

// Countdown is the handle of the single pending auto-submit.
type Countdown struct {
	ID      CountdownID
	ArmedAt time.Time
	Limit   time.Duration
}

// Deadline returns the moment the countdown elapses.
func (c Countdown) Deadline() time.Time {
	return c.ArmedAt.Add(c.Limit)
}

// Remaining returns the time left at now, never negative.
func (c Countdown) Remaining(now time.Time) time.Duration {
	d := c.Deadline().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Attempt records how one question was completed.
type Attempt struct {
	// QuestionIndex is the position of the question in the set.
	QuestionIndex int

	// Selected holds the submitted option indices (sorted). On timeout it is
	// whatever was selected when the countdown ran out.
	Selected []int

	// Correct is the grading result. Always false on timeout.
	Correct bool

	// TimedOut is true when the countdown elapsed before a submit.
	TimedOut bool

	// Elapsed is the time between arming the countdown and completion.
	Elapsed time.Duration
}

// SessionState is a read-only copy of the controller state handed to the
// presentation layer.
type SessionState struct {
	// Phase is the current session phase.
	Phase Phase

	// Index is -1 before start, Total when finished, otherwise the active question.
	Index int

	// Total is the number of questions in the session.
	Total int

	// Question is the active question (nil when not started or finished).
	Question *Question

	// Selected holds the currently chosen option indices, sorted ascending.
	Selected []int

	// Results holds one grading result per completed question, in order.
	Results []bool

	// Attempts parallels Results with the details of each completion.
	Attempts []Attempt

	// Remaining is the time left on the countdown (zero outside solving).
	Remaining time.Duration

	// TimeLimit is the per-question countdown duration.
	TimeLimit time.Duration

	// StartTime is when the first question was shown.
	StartTime time.Time
}

// Solving reports whether input is currently accepted.
func (s SessionState) Solving() bool {
	return s.Phase == PhaseSolving
}

// CanSubmit reports whether the selection count matches the expected count.
func (s SessionState) CanSubmit() bool {
	return s.Solving() && s.Question != nil && len(s.Selected) == s.Question.AnswerCount()
}

// IsSelected reports whether option i is in the current selection.
func (s SessionState) IsSelected(i int) bool {
	for _, sel := range s.Selected {
		if sel == i {
			return true
		}
	}
	return false
}

// LastAttempt returns the attempt for the active question once it has been
// completed, or nil while it is still being solved.
func (s SessionState) LastAttempt() *Attempt {
	if s.Phase != PhaseReviewing || len(s.Attempts) == 0 {
		return nil
	}
	a := s.Attempts[len(s.Attempts)-1]
	if a.QuestionIndex != s.Index {
		return nil
	}
	return &a
}

// CorrectCount returns the number of correct results so far.
func (s SessionState) CorrectCount() int {
	n := 0
	for _, ok := range s.Results {
		if ok {
			n++
		}
	}
	return n
}

func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	q.Answer = slices.Clone(q.Answer)
	return q
}
