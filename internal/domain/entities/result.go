package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is the outcome of one finished quiz run.
type QuizResult struct {
	RunID      uuid.UUID // quiz run identifier
	UserID     int64     // user who took the quiz
	Score      int       // correct answers
	Total      int       // questions in the run
	StartedAt  time.Time // when the run started
	FinishedAt time.Time // when the last answer was evaluated
}

// NewQuizResult captures the result of a finished session.
func NewQuizResult(s *QuizSession, finishedAt time.Time) QuizResult {
	return QuizResult{
		RunID:      s.RunID,
		UserID:     s.UserID,
		Score:      s.Score,
		Total:      s.Total(),
		StartedAt:  s.StartedAt,
		FinishedAt: finishedAt,
	}
}
