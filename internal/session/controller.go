package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoQuestions is returned when a session is created without questions.
	ErrNoQuestions = errors.New("session: no questions")

	// ErrInvalidQuestion is returned when a question breaks the record invariants.
	ErrInvalidQuestion = errors.New("session: invalid question")
)

// Option configures a Controller.
type Option func(*Controller)

// WithTimeLimit sets the per-question countdown. Non-positive values are ignored.
func WithTimeLimit(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeLimit = d
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger for transitions that are silently ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller sequences a quiz session over a fixed list of questions.
// It is not safe for concurrent use; callers serialize all calls, as the
// Bubble Tea update loop does.
type Controller struct {
	questions []Question
	timeLimit time.Duration
	now       func() time.Time
	log       *zap.Logger

	phase     Phase
	index     int
	selected  map[int]struct{}
	results   []bool
	attempts  []Attempt
	countdown *Countdown
	lastID    CountdownID
	startTime time.Time
}

// NewController creates a controller in the not-started phase.
func NewController(questions []Question, opts ...Option) (*Controller, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if err := checkQuestion(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidQuestion, i, err)
		}
	}

	c := &Controller{
		questions: make([]Question, 0, len(questions)),
		timeLimit: DefaultTimeLimit,
		now:       time.Now,
		log:       zap.NewNop(),
		phase:     PhaseNotStarted,
		index:     -1,
		selected:  make(map[int]struct{}),
	}
	for _, q := range questions {
		c.questions = append(c.questions, q.clone())
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func checkQuestion(q Question) error {
	if len(q.Options) == 0 {
		return errors.New("no options")
	}
	if len(q.Answer) == 0 {
		return errors.New("no answer")
	}
	seen := make(map[int]bool, len(q.Answer))
	for _, a := range q.Answer {
		if a < 0 || a >= len(q.Options) {
			return fmt.Errorf("answer index %d out of range", a)
		}
		if seen[a] {
			return fmt.Errorf("duplicate answer index %d", a)
		}
		seen[a] = true
	}
	return nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Total returns the number of questions.
func (c *Controller) Total() int {
	return len(c.questions)
}

// Questions returns a copy of the question set.
func (c *Controller) Questions() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.clone()
	}
	return out
}

// TimeLimit returns the per-question countdown duration.
func (c *Controller) TimeLimit() time.Duration {
	return c.timeLimit
}

// Countdown returns the armed countdown, if any.
func (c *Controller) Countdown() (Countdown, bool) {
	if c.countdown == nil {
		return Countdown{}, false
	}
	return *c.countdown, true
}

// Start shows the first question. It only has an effect before the session
// has started.
func (c *Controller) Start() bool {
	if c.phase != PhaseNotStarted {
		return false
	}
	c.startTime = c.now()
	return c.Advance()
}

// Advance moves from the not-started or reviewing phase to the next question,
// or to the finished phase after the last question.
func (c *Controller) Advance() bool {
	if c.phase != PhaseNotStarted && c.phase != PhaseReviewing {
		return false
	}
	if c.phase == PhaseNotStarted && c.startTime.IsZero() {
		c.startTime = c.now()
	}

	c.index++
	clear(c.selected)
	c.countdown = nil

	if c.index >= len(c.questions) {
		c.index = len(c.questions)
		c.phase = PhaseFinished
		return true
	}

	c.phase = PhaseSolving
	c.lastID++
	c.countdown = &Countdown{
		ID:      c.lastID,
		ArmedAt: c.now(),
		Limit:   c.timeLimit,
	}
	return true
}

// Toggle flips option in the selection of question. The question index must
// be the active one. Adding is refused once the selection already holds as
// many options as the question has correct answers.
func (c *Controller) Toggle(question, option int) bool {
	if c.phase != PhaseSolving || question != c.index {
		return false
	}
	q := c.questions[c.index]
	if option < 0 || option >= len(q.Options) {
		return false
	}

	if _, ok := c.selected[option]; ok {
		delete(c.selected, option)
		return true
	}
	if len(c.selected) >= q.AnswerCount() {
		return false
	}
	c.selected[option] = struct{}{}
	return true
}

// Submit grades the current selection. It is a no-op unless the selection
// holds exactly as many options as the question has correct answers.
func (c *Controller) Submit() bool {
	if c.phase != PhaseSolving {
		return false
	}
	q := c.questions[c.index]
	if len(c.selected) != q.AnswerCount() {
		return false
	}

	elapsed := c.elapsed()
	c.countdown = nil

	selected := c.selection()
	correct := Grade(selected, q.Answer)
	c.complete(Attempt{
		QuestionIndex: c.index,
		Selected:      selected,
		Correct:       correct,
		Elapsed:       elapsed,
	})
	return true
}

// Expire applies the timeout for the countdown identified by id. Fires for a
// countdown that was cancelled or replaced are ignored.
func (c *Controller) Expire(id CountdownID) bool {
	if c.countdown == nil || c.countdown.ID != id {
		c.log.Debug("ignoring stale countdown",
			zap.Uint64("countdown_id", uint64(id)),
			zap.Stringer("phase", c.phase),
		)
		return false
	}
	return c.Timeout()
}

// Timeout ends the active question without grading. The question is
// recorded as incorrect so every question owns exactly one result. The
// selection held at that moment is kept on the attempt for review.
func (c *Controller) Timeout() bool {
	if c.phase != PhaseSolving {
		return false
	}
	elapsed := c.elapsed()
	c.countdown = nil
	c.complete(Attempt{
		QuestionIndex: c.index,
		Selected:      c.selection(),
		TimedOut:      true,
		Elapsed:       elapsed,
	})
	return true
}

// State returns a copy of the session state for rendering.
func (c *Controller) State() SessionState {
	s := SessionState{
		Phase:     c.phase,
		Index:     c.index,
		Total:     len(c.questions),
		Selected:  c.selection(),
		Results:   slices.Clone(c.results),
		Attempts:  slices.Clone(c.attempts),
		TimeLimit: c.timeLimit,
		StartTime: c.startTime,
	}
	if c.index >= 0 && c.index < len(c.questions) {
		q := c.questions[c.index].clone()
		s.Question = &q
	}
	if c.countdown != nil {
		s.Remaining = c.countdown.Remaining(c.now())
	}
	return s
}

func (c *Controller) complete(a Attempt) {
	c.results = append(c.results, a.Correct)
	c.attempts = append(c.attempts, a)
	c.phase = PhaseReviewing
}

func (c *Controller) elapsed() time.Duration {
	if c.countdown == nil {
		return 0
	}
	d := c.now().Sub(c.countdown.ArmedAt)
	if d > c.countdown.Limit {
		return c.countdown.Limit
	}
	return d
}

func (c *Controller) selection() []int {
	out := make([]int, 0, len(c.selected))
	for i := range c.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}
