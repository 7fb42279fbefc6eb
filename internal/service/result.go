package service

import (
	"context"
	"errors"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

var ErrHistoryDisabled = errors.New("quiz history is disabled")

// ResultService records finished quiz runs. With a nil repository it keeps
// nothing, which is the mode used when no database is configured.
type ResultService struct {
	repo ResultRepository
}

func NewResultService(repo ResultRepository) *ResultService {
	return &ResultService{repo: repo}
}

// Enabled reports whether results are persisted.
func (s *ResultService) Enabled() bool {
	return s.repo != nil
}

func (s *ResultService) Save(ctx context.Context, result entities.QuizResult) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Save(ctx, result)
}

// Recent returns up to limit latest results of the user, newest first.
func (s *ResultService) Recent(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
