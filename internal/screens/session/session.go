package session

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/quizbit/internal/router"
	"github.com/abhisek/quizbit/internal/screen"
	"github.com/abhisek/quizbit/internal/screens/summary"
	sess "github.com/abhisek/quizbit/internal/session"
	"github.com/abhisek/quizbit/internal/ui/layout"
)

// Options carries what a quiz session needs. The same value is reused when
// the quiz is retried from the summary screen.
type Options struct {
	Questions []sess.Question
	TimeLimit time.Duration
	Logger    *zap.Logger

	// Now overrides time.Now for the controller and summary.
	Now func() time.Time
}

// SessionScreen implements screen.Screen for an active quiz.
type SessionScreen struct {
	opts      Options
	ctrl      *sess.Controller
	log       *zap.Logger
	keys      keyMap
	sessionID string

	cursor      int
	notice      string // selection guidance shown after an early submit
	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a SessionScreen over a fresh controller. A question set the
// controller rejects is reported on screen.
func New(opts Options) *SessionScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &SessionScreen{
		opts:      opts,
		keys:      defaultKeyMap(),
		sessionID: uuid.New().String(),
	}
	s.log = log.With(zap.String("session_id", s.sessionID))

	ctrl, err := sess.NewController(opts.Questions,
		sess.WithTimeLimit(opts.TimeLimit),
		sess.WithClock(opts.Now),
		sess.WithLogger(s.log),
	)
	if err != nil {
		s.errMsg = err.Error()
		s.log.Error("create session", zap.Error(err))
		return s
	}
	s.ctrl = ctrl
	return s
}

// SessionID returns the identifier attached to this session's log lines.
func (s *SessionScreen) SessionID() string {
	return s.sessionID
}

// State returns the controller state, or the zero state when the session
// could not be created.
func (s *SessionScreen) State() sess.SessionState {
	if s.ctrl == nil {
		return sess.SessionState{Index: -1}
	}
	return s.ctrl.State()
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.ctrl == nil || !s.ctrl.Start() {
		return nil
	}
	s.log.Info("session started",
		zap.Int("questions", s.ctrl.Total()),
		zap.Duration("time_limit", s.ctrl.TimeLimit()),
	)
	return s.armTimers()
}

func (s *SessionScreen) Title() string {
	return "Quiz"
}

func (s *SessionScreen) Status() string {
	if s.ctrl == nil {
		return ""
	}
	st := s.ctrl.State()
	if st.Index < 0 || st.Index >= st.Total {
		return ""
	}
	return fmt.Sprintf("Q %d/%d  ✔ %d", st.Index+1, st.Total, st.CorrectCount())
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.ctrl == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.quitConfirm {
		return hints(s.keys.Yes, s.keys.No)
	}
	if s.ctrl.Phase() == sess.PhaseReviewing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return hints(s.keys.Pick, s.keys.Toggle, s.keys.Submit, s.keys.Quit)
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	st := s.ctrl.State()
	switch st.Phase {
	case sess.PhaseSolving, sess.PhaseReviewing:
		return s.renderQuestionView(st, width, height)
	}
	return renderLoading(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case countdownExpiredMsg:
		return s.handleExpired(msg)

	case timerTickMsg:
		return s.handleTimerTick(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleExpired(msg countdownExpiredMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, nil
	}
	if s.ctrl.Expire(msg.ID) {
		s.notice = ""
		s.log.Info("question timed out", zap.Int("question", s.ctrl.State().Index))
	}
	return s, nil
}

// handleTimerTick keeps ticking only while the countdown it was started for
// is still live.
func (s *SessionScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, nil
	}
	cd, ok := s.ctrl.Countdown()
	if !ok || cd.ID != msg.ID {
		return s, nil
	}
	return s, tickCmd(cd.ID)
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, popCmd
	}

	if s.quitConfirm {
		switch {
		case key.Matches(msg, s.keys.Yes):
			s.quitConfirm = false
			st := s.ctrl.State()
			s.log.Info("session abandoned",
				zap.Int("question", st.Index),
				zap.Int("answered", len(st.Results)),
			)
			return s, popCmd
		case key.Matches(msg, s.keys.No):
			s.quitConfirm = false
		}
		return s, nil
	}

	if key.Matches(msg, s.keys.Quit) {
		s.quitConfirm = true
		return s, nil
	}

	switch s.ctrl.Phase() {
	case sess.PhaseReviewing:
		if key.Matches(msg, s.keys.Submit) {
			return s.advance()
		}
	case sess.PhaseSolving:
		return s.handleSolvingKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleSolvingKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	st := s.ctrl.State()
	n := len(st.Question.Options)

	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, s.keys.Down):
		if s.cursor < n-1 {
			s.cursor++
		}
	case key.Matches(msg, s.keys.Toggle):
		s.toggle(st, s.cursor)
	case key.Matches(msg, s.keys.Pick):
		opt, err := strconv.Atoi(msg.String())
		if err != nil || opt < 1 || opt > n {
			return s, nil
		}
		s.cursor = opt - 1
		s.toggle(st, s.cursor)
	case key.Matches(msg, s.keys.Submit):
		s.submit(st)
	}
	return s, nil
}

func (s *SessionScreen) toggle(st sess.SessionState, option int) {
	if s.ctrl.Toggle(st.Index, option) {
		s.notice = ""
		return
	}
	k := st.Question.AnswerCount()
	if !st.IsSelected(option) && len(st.Selected) >= k {
		s.notice = selectionGuidance(k) + ". Deselect one first."
	}
}

func (s *SessionScreen) submit(st sess.SessionState) {
	if !s.ctrl.Submit() {
		s.notice = selectionGuidance(st.Question.AnswerCount())
		return
	}
	s.notice = ""
	if a := s.ctrl.State().LastAttempt(); a != nil {
		s.log.Info("answer submitted",
			zap.Int("question", a.QuestionIndex),
			zap.Ints("selected", a.Selected),
			zap.Bool("correct", a.Correct),
			zap.Duration("elapsed", a.Elapsed),
		)
	}
}

// advance moves past the reviewed question. Finishing the last question
// swaps this screen for the summary.
func (s *SessionScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.ctrl.Advance() {
		return s, nil
	}
	s.cursor = 0
	s.notice = ""

	if s.ctrl.Phase() != sess.PhaseFinished {
		return s, s.armTimers()
	}

	sum := sess.BuildSummary(s.ctrl.State(), s.ctrl.Questions(), s.sessionID, s.opts.Now())
	s.log.Info("session finished",
		zap.Int("correct", sum.TotalCorrect),
		zap.Int("timed_out", sum.TotalTimedOut),
		zap.Int("total", sum.TotalQuestions),
		zap.Duration("duration", sum.Duration),
	)

	opts := s.opts
	retry := func() screen.Screen { return New(opts) }
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, retry)}
	}
}

// armTimers schedules the auto-submit and the display tick for the live
// countdown.
func (s *SessionScreen) armTimers() tea.Cmd {
	cd, ok := s.ctrl.Countdown()
	if !ok {
		return nil
	}
	return tea.Batch(expireCmd(cd), tickCmd(cd.ID))
}

func popCmd() tea.Msg {
	return router.PopScreenMsg{}
}

func selectionGuidance(k int) string {
	if k == 1 {
		return "Select exactly 1 option"
	}
	return fmt.Sprintf("Select exactly %d options", k)
}
