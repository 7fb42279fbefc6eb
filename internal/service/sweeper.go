package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically evicts sessions idle longer than ttl.
type SessionSweeper struct {
	store    SessionEvictor
	ttl      time.Duration
	schedule string
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionSweeper(store SessionEvictor, ttl time.Duration, schedule string, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		ttl:      ttl,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep on schedule until ctx is done. A zero ttl disables
// eviction and Start returns immediately.
func (s *SessionSweeper) Start(ctx context.Context) error {
	if s.ttl <= 0 {
		s.logger.Info("session eviction disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("ttl", s.ttl),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")

	return nil
}

// Sweep evicts idle sessions once and returns how many were removed.
func (s *SessionSweeper) Sweep() int {
	n := s.store.EvictIdle(s.now().Add(-s.ttl))
	if n > 0 {
		s.logger.Info("evicted idle sessions",
			zap.Int("evicted", n),
			zap.Int("remaining", s.store.Len()),
		)
	}
	return n
}
