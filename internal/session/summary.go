package session

import "time"

// QuestionResult is one row of the summary, indexed by question number.
type QuestionResult struct {
	Index    int
	Text     string
	Correct  bool
	TimedOut bool
	Elapsed  time.Duration
}

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	TotalTimedOut  int
	Accuracy       float64
	Results        []QuestionResult
}

// BuildSummary creates a SessionSummary from the session state and question set.
// Rows are looked up by question index. A finished session has one attempt
// per question, since a timeout is recorded as an incorrect attempt.
func BuildSummary(state SessionState, questions []Question, sessionID string, now time.Time) *SessionSummary {
	byIndex := make(map[int]Attempt, len(state.Attempts))
	for _, a := range state.Attempts {
		byIndex[a.QuestionIndex] = a
	}

	sum := &SessionSummary{
		SessionID:      sessionID,
		TotalQuestions: state.Total,
	}
	if !state.StartTime.IsZero() {
		sum.Duration = now.Sub(state.StartTime)
	}

	for i := 0; i < state.Total; i++ {
		row := QuestionResult{Index: i}
		if i < len(questions) {
			row.Text = questions[i].Text
		}
		if a, ok := byIndex[i]; ok {
			row.Correct = a.Correct
			row.TimedOut = a.TimedOut
			row.Elapsed = a.Elapsed
		}
		if row.Correct {
			sum.TotalCorrect++
		}
		if row.TimedOut {
			sum.TotalTimedOut++
		}
		sum.Results = append(sum.Results, row)
	}

	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalQuestions)
	}
	return sum
}
