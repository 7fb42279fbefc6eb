package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

func newTestBank(t *testing.T) *entities.QuestionBank {
	t.Helper()

	bank, err := entities.NewQuestionBank([]entities.Question{
		{Text: "2+2?", Options: [4]string{"3", "4", "5", "6"}, CorrectIndex: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	return bank
}

func TestSessionStoreCreatesOnce(t *testing.T) {
	store := NewSessionStore(newTestBank(t))

	var first, second *entities.QuizSession
	store.WithSession(7, func(s *entities.QuizSession) { first = s })
	store.WithSession(7, func(s *entities.QuizSession) { second = s })

	if first != second {
		t.Fatal("WithSession created a second session for the same user")
	}
	if first.UserID != 7 {
		t.Fatalf("UserID = %d want 7", first.UserID)
	}
	if first.State() != entities.StateIdle {
		t.Fatalf("new session state = %s want %s", first.State(), entities.StateIdle)
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d want 1", store.Len())
	}
}

func TestSessionStoreSerialisesSameUser(t *testing.T) {
	store := NewSessionStore(newTestBank(t))

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.WithSession(1, func(s *entities.QuizSession) {
				n := s.Score
				time.Sleep(time.Microsecond)
				s.Score = n + 1
			})
		}()
	}
	wg.Wait()

	store.WithSession(1, func(s *entities.QuizSession) {
		if s.Score != workers {
			t.Fatalf("Score = %d want %d: updates interleaved", s.Score, workers)
		}
	})
}

func TestSessionStoreUsersIndependent(t *testing.T) {
	store := NewSessionStore(newTestBank(t))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		store.WithSession(1, func(*entities.QuizSession) {
			close(entered)
			<-release
		})
	}()
	<-entered

	finished := make(chan struct{})
	go func() {
		store.WithSession(2, func(*entities.QuizSession) {})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("user 2 blocked by user 1")
	}

	close(release)
	<-done
}

func TestSessionStoreEvictIdle(t *testing.T) {
	store := NewSessionStore(newTestBank(t))

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.WithSession(1, func(*entities.QuizSession) {})
	now = now.Add(time.Hour)
	store.WithSession(2, func(*entities.QuizSession) {})

	if n := store.EvictIdle(now.Add(-30 * time.Minute)); n != 1 {
		t.Fatalf("EvictIdle() = %d want 1", n)
	}
	if store.Len() != 1 {
		t.Fatalf("Len() = %d want 1", store.Len())
	}

	var fresh *entities.QuizSession
	store.WithSession(1, func(s *entities.QuizSession) { fresh = s })
	if fresh == nil || fresh.Score != 0 || fresh.Active {
		t.Fatalf("evicted user did not get a clean session: %+v", fresh)
	}
}

func TestSessionStoreEvictSkipsBusy(t *testing.T) {
	store := NewSessionStore(newTestBank(t))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		store.WithSession(1, func(*entities.QuizSession) {
			close(entered)
			<-release
		})
	}()
	<-entered

	if n := store.EvictIdle(time.Now().Add(time.Hour)); n != 0 {
		t.Fatalf("EvictIdle() = %d want 0 for busy session", n)
	}

	close(release)
	<-done

	if n := store.EvictIdle(time.Now().Add(time.Hour)); n != 1 {
		t.Fatalf("EvictIdle() = %d want 1", n)
	}
}
