package service

import (
	"context"
	"time"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// SessionStore gives exclusive per-user access to quiz sessions.
type SessionStore interface {
	WithSession(userID int64, fn func(session *entities.QuizSession))
}

// SessionEvictor removes sessions that have been idle for too long.
type SessionEvictor interface {
	EvictIdle(cutoff time.Time) int
	Len() int
}

// Sender delivers rendered messages to a chat.
type Sender interface {
	Send(ctx context.Context, msg entities.OutgoingMessage) error
}

// ResultRecorder stores the outcome of finished quiz runs.
type ResultRecorder interface {
	Save(ctx context.Context, result entities.QuizResult) error
}

// ResultRepository persists quiz results.
type ResultRepository interface {
	Save(ctx context.Context, result entities.QuizResult) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error)
}
