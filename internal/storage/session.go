package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

type sessionEntry struct {
	mu       sync.Mutex
	session  *entities.QuizSession
	lastSeen time.Time
}

// SessionStore provides in-memory quiz sessions keyed by user ID.
// The map lock is held only for lookups; each session has its own lock,
// so events of different users never wait on each other.
type SessionStore struct {
	mu       sync.Mutex
	bank     *entities.QuestionBank
	sessions map[int64]*sessionEntry
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions iterate bank.
func NewSessionStore(bank *entities.QuestionBank) *SessionStore {
	return &SessionStore{
		bank:     bank,
		sessions: make(map[int64]*sessionEntry),
		now:      time.Now,
	}
}

// WithSession runs fn with exclusive access to the session of userID,
// creating an idle session on first contact.
func (s *SessionStore) WithSession(userID int64, fn func(session *entities.QuizSession)) {
	e := s.lock(userID)
	defer e.mu.Unlock()

	e.lastSeen = s.now()
	fn(e.session)
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// EvictIdle removes sessions not seen since cutoff. Sessions with an
// in-flight event are kept. It returns the number of removed sessions.
func (s *SessionStore) EvictIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
		e.mu.Unlock()
	}

	return evicted
}

func (s *SessionStore) entry(userID int64) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[userID]
	if !ok {
		e = &sessionEntry{
			session:  entities.NewQuizSession(userID, s.bank),
			lastSeen: s.now(),
		}
		s.sessions[userID] = e
	}

	return e
}

// lock returns the locked entry of userID. The entry may be evicted between
// lookup and lock, in which case the lookup is retried.
func (s *SessionStore) lock(userID int64) *sessionEntry {
	for {
		e := s.entry(userID)

		e.mu.Lock()
		if s.owns(userID, e) {
			return e
		}
		e.mu.Unlock()
	}
}

func (s *SessionStore) owns(userID int64, e *sessionEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID] == e
}
