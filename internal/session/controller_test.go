package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func testQuestions() []Question {
	return []Question{
		{
			Text:        "Which keyword declares a goroutine?",
			Options:     []string{"defer", "go", "chan", "select"},
			Answer:      []int{1},
			Description: "`go f()` starts f in a new goroutine.",
		},
		{
			Text:        "Which types are reference-like?",
			Options:     []string{"map", "int", "slice", "bool"},
			Answer:      []int{0, 2},
			Description: "Maps and slices share their backing storage.",
		},
		{
			Text:    "Zero value of a pointer?",
			Options: []string{"0", "nil"},
			Answer:  []int{1},
		},
	}
}

func testController(t *testing.T, qs []Question) (*Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	c, err := NewController(qs, WithClock(clock.Now))
	require.NoError(t, err)
	return c, clock
}

func TestNewController_Empty(t *testing.T) {
	_, err := NewController(nil)
	require.ErrorIs(t, err, ErrNoQuestions)
}

func TestNewController_InvalidQuestion(t *testing.T) {
	tests := []struct {
		name string
		q    Question
	}{
		{"no options", Question{Text: "x", Answer: []int{0}}},
		{"no answer", Question{Text: "x", Options: []string{"a"}}},
		{"answer out of range", Question{Text: "x", Options: []string{"a"}, Answer: []int{1}}},
		{"negative answer", Question{Text: "x", Options: []string{"a"}, Answer: []int{-1}}},
		{"duplicate answer", Question{Text: "x", Options: []string{"a", "b"}, Answer: []int{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewController([]Question{tt.q})
			require.ErrorIs(t, err, ErrInvalidQuestion)
		})
	}
}

func TestController_InitialState(t *testing.T) {
	c, _ := testController(t, testQuestions())

	s := c.State()
	assert.Equal(t, PhaseNotStarted, s.Phase)
	assert.Equal(t, -1, s.Index)
	assert.Equal(t, 3, s.Total)
	assert.Nil(t, s.Question)
	assert.Empty(t, s.Results)
	assert.False(t, s.Solving())
	assert.Equal(t, DefaultTimeLimit, c.TimeLimit())

	_, armed := c.Countdown()
	assert.False(t, armed)
}

func TestController_StartArmsCountdown(t *testing.T) {
	c, _ := testController(t, testQuestions())

	require.True(t, c.Start())

	s := c.State()
	assert.Equal(t, PhaseSolving, s.Phase)
	assert.Equal(t, 0, s.Index)
	assert.True(t, s.Solving())
	require.NotNil(t, s.Question)
	assert.Equal(t, "Which keyword declares a goroutine?", s.Question.Text)
	assert.Equal(t, DefaultTimeLimit, s.Remaining)

	cd, armed := c.Countdown()
	require.True(t, armed)
	assert.Equal(t, DefaultTimeLimit, cd.Limit)
}

func TestController_StartTwiceIsNoop(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())
	cd, _ := c.Countdown()

	assert.False(t, c.Start())
	assert.Equal(t, 0, c.State().Index)

	again, _ := c.Countdown()
	assert.Equal(t, cd.ID, again.ID)
}

func TestController_SingleAnswerCorrect(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())

	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())

	s := c.State()
	assert.Equal(t, []bool{true}, s.Results)
	assert.False(t, s.Solving())
	assert.Equal(t, PhaseReviewing, s.Phase)

	_, armed := c.Countdown()
	assert.False(t, armed, "submit must cancel the countdown")
}

func TestController_SingleAnswerWrong(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())

	require.True(t, c.Toggle(0, 3))
	require.True(t, c.Submit())

	s := c.State()
	assert.Equal(t, []bool{false}, s.Results)
	require.Len(t, s.Attempts, 1)
	assert.Equal(t, []int{3}, s.Attempts[0].Selected)
	assert.False(t, s.Attempts[0].TimedOut)
}

func TestController_MultiSelect(t *testing.T) {
	c, _ := testController(t, testQuestions()[1:])
	require.True(t, c.Start())

	require.True(t, c.Toggle(0, 2))
	require.True(t, c.Toggle(0, 0))
	assert.False(t, c.Toggle(0, 1), "third selection must be rejected")
	assert.Equal(t, []int{0, 2}, c.State().Selected)

	require.True(t, c.Submit())
	assert.Equal(t, []bool{true}, c.State().Results)
}

func TestController_ToggleRemovesSelection(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())

	require.True(t, c.Toggle(0, 2))
	assert.False(t, c.Toggle(0, 1), "single-answer question is already full")

	require.True(t, c.Toggle(0, 2))
	assert.Empty(t, c.State().Selected)

	require.True(t, c.Toggle(0, 1))
	assert.Equal(t, []int{1}, c.State().Selected)
}

func TestController_ToggleNeverExceedsAnswerCount(t *testing.T) {
	for qi, q := range testQuestions() {
		c, _ := testController(t, []Question{q})
		require.True(t, c.Start())
		for round := 0; round < 3; round++ {
			for opt := range q.Options {
				c.Toggle(0, opt)
				assert.LessOrEqual(t, len(c.State().Selected), q.AnswerCount(), "question %d", qi)
			}
		}
	}
}

func TestController_ToggleGuards(t *testing.T) {
	c, _ := testController(t, testQuestions())

	assert.False(t, c.Toggle(0, 1), "not started")

	require.True(t, c.Start())
	assert.False(t, c.Toggle(1, 0), "wrong question index")
	assert.False(t, c.Toggle(0, -1), "negative option")
	assert.False(t, c.Toggle(0, 4), "option out of range")
	assert.Empty(t, c.State().Selected)

	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())
	assert.False(t, c.Toggle(0, 1), "reviewing")
	assert.Equal(t, []int{1}, c.State().Selected)
}

func TestController_SubmitIncompleteIsNoop(t *testing.T) {
	c, _ := testController(t, testQuestions()[1:])
	require.True(t, c.Start())

	assert.False(t, c.Submit(), "nothing selected")
	require.True(t, c.Toggle(0, 0))
	assert.False(t, c.Submit(), "one of two selected")

	s := c.State()
	assert.Equal(t, PhaseSolving, s.Phase)
	assert.Empty(t, s.Results)
	assert.False(t, s.CanSubmit())

	_, armed := c.Countdown()
	assert.True(t, armed)
}

func TestController_SubmitTwiceIsNoop(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())
	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())

	assert.False(t, c.Submit())
	assert.Len(t, c.State().Results, 1)
}

func TestController_SubmitOutsideSolving(t *testing.T) {
	c, _ := testController(t, testQuestions())
	assert.False(t, c.Submit())
	assert.False(t, c.Timeout())
}

func TestController_Timeout(t *testing.T) {
	c, clock := testController(t, testQuestions())
	require.True(t, c.Start())
	require.True(t, c.Toggle(0, 1))

	cd, _ := c.Countdown()
	clock.Advance(DefaultTimeLimit)
	require.True(t, c.Expire(cd.ID))

	s := c.State()
	assert.False(t, s.Solving())
	assert.Equal(t, PhaseReviewing, s.Phase)
	assert.Equal(t, []bool{false}, s.Results, "timeout records an incorrect result")
	require.Len(t, s.Attempts, 1)
	assert.True(t, s.Attempts[0].TimedOut)
	assert.Equal(t, []int{1}, s.Attempts[0].Selected, "selection kept on timeout")
	assert.False(t, s.Attempts[0].Correct, "no grading on timeout")
	assert.Equal(t, DefaultTimeLimit, s.Attempts[0].Elapsed)

	assert.False(t, c.Submit(), "submit after timeout")
	assert.Len(t, c.State().Results, 1)
}

func TestController_CancelledCountdownNeverFires(t *testing.T) {
	c, clock := testController(t, testQuestions())
	require.True(t, c.Start())
	cd, _ := c.Countdown()

	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())

	clock.Advance(DefaultTimeLimit)
	assert.False(t, c.Expire(cd.ID))
	assert.Equal(t, []bool{true}, c.State().Results)
	assert.Equal(t, PhaseReviewing, c.Phase())
}

func TestController_StaleCountdownAfterAdvance(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())
	first, _ := c.Countdown()

	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())
	require.True(t, c.Advance())

	second, armed := c.Countdown()
	require.True(t, armed)
	assert.NotEqual(t, first.ID, second.ID)

	assert.False(t, c.Expire(first.ID), "old countdown must not end the new question")
	assert.Equal(t, PhaseSolving, c.Phase())
	assert.Len(t, c.State().Results, 1)

	assert.True(t, c.Expire(second.ID))
	assert.Equal(t, []bool{true, false}, c.State().Results)
}

func TestController_AdvanceGuards(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())

	assert.False(t, c.Advance(), "cannot skip a question while solving")
	assert.Equal(t, 0, c.State().Index)
}

func TestController_AdvanceReachesFinished(t *testing.T) {
	qs := testQuestions()
	c, _ := testController(t, qs)

	transitions := 0
	for c.Phase() != PhaseFinished {
		require.True(t, c.Advance())
		transitions++
		if c.Phase() == PhaseSolving {
			require.True(t, c.Timeout())
		}
	}

	assert.Equal(t, len(qs)+1, transitions)
	s := c.State()
	assert.Equal(t, len(qs), s.Index)
	assert.Nil(t, s.Question)
	assert.Len(t, s.Results, len(qs))

	assert.False(t, c.Advance(), "advance past the end")
	assert.Equal(t, len(qs), c.State().Index)
	_, armed := c.Countdown()
	assert.False(t, armed)
}

func TestController_TwoQuestionsFinished(t *testing.T) {
	qs := []Question{testQuestions()[0], testQuestions()[2]}
	c, _ := testController(t, qs)

	require.True(t, c.Start())
	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())
	require.True(t, c.Advance())
	require.True(t, c.Toggle(1, 0))
	require.True(t, c.Submit())
	require.True(t, c.Advance())

	s := c.State()
	assert.Equal(t, PhaseFinished, s.Phase)
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, []bool{true, false}, s.Results)
	assert.Equal(t, 1, s.CorrectCount())
}

func TestController_AdvanceClearsSelection(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())
	require.True(t, c.Toggle(0, 1))
	require.True(t, c.Submit())
	assert.Equal(t, []int{1}, c.State().Selected)

	require.True(t, c.Advance())
	assert.Empty(t, c.State().Selected)
}

func TestController_Remaining(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	c, err := NewController(testQuestions(), WithClock(clock.Now), WithTimeLimit(5*time.Second))
	require.NoError(t, err)
	require.True(t, c.Start())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 3*time.Second, c.State().Remaining)

	clock.Advance(10 * time.Second)
	assert.Equal(t, time.Duration(0), c.State().Remaining)
}

func TestController_WithTimeLimitIgnoresNonPositive(t *testing.T) {
	c, err := NewController(testQuestions(), WithTimeLimit(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeLimit, c.TimeLimit())
}

func TestController_StateIsACopy(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())
	require.True(t, c.Toggle(0, 1))

	s := c.State()
	s.Selected[0] = 3
	s.Question.Answer[0] = 3

	assert.Equal(t, []int{1}, c.State().Selected)
	require.True(t, c.Submit())
	assert.Equal(t, []bool{true}, c.State().Results)
}

func TestSessionState_LastAttempt(t *testing.T) {
	c, _ := testController(t, testQuestions())
	require.True(t, c.Start())
	assert.Nil(t, c.State().LastAttempt())

	require.True(t, c.Toggle(0, 0))
	require.True(t, c.Submit())

	a := c.State().LastAttempt()
	require.NotNil(t, a)
	assert.Equal(t, 0, a.QuestionIndex)
	assert.False(t, a.Correct)
}
