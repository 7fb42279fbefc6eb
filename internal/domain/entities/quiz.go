package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionInactive = errors.New("quiz session is not active")
	ErrSessionFinished = errors.New("quiz session is finished")
)

// QuizState is the externally visible state of a QuizSession.
type QuizState int

const (
	StateIdle QuizState = iota
	StateInProgress
	StateFinished
)

func (s QuizState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in_progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// QuizSession tracks one user's position in the shared QuestionBank.
// It is not safe for concurrent use; the session store serialises access per user.
type QuizSession struct {
	UserID       int64     // Telegram user ID
	RunID        uuid.UUID // identifier of the current quiz run, zero before the first run
	CurrentIndex int       // index of the next question to answer
	Score        int       // number of correct answers in the current run
	Active       bool      // whether answers are accepted
	StartedAt    time.Time // start of the current run

	bank *QuestionBank
}

// Evaluation is the outcome of a single answer.
type Evaluation struct {
	Correct       bool
	CorrectAnswer string
}

// NewQuizSession creates an idle session over bank.
func NewQuizSession(userID int64, bank *QuestionBank) *QuizSession {
	return &QuizSession{
		UserID: userID,
		bank:   bank,
	}
}

// Reset returns the session to a clean idle state without starting a run.
func (s *QuizSession) Reset() {
	s.CurrentIndex = 0
	s.Score = 0
	s.Active = false
}

// Start begins a new run from the first question and returns it.
// Start is valid from any state, so a finished session can be replayed.
func (s *QuizSession) Start(now time.Time) (Question, error) {
	if s.bank == nil || s.bank.Len() == 0 {
		return Question{}, ErrEmptyBank
	}

	s.CurrentIndex = 0
	s.Score = 0
	s.Active = true
	s.RunID = uuid.New()
	s.StartedAt = now

	q, _ := s.bank.At(0)
	return q, nil
}

// CurrentQuestion returns the question awaiting an answer, or false once
// every question has been answered.
func (s *QuizSession) CurrentQuestion() (Question, bool) {
	if s.bank == nil {
		return Question{}, false
	}
	return s.bank.At(s.CurrentIndex)
}

// Evaluate checks answer against the current question by exact text match,
// awards a point on a match and always advances to the next question.
func (s *QuizSession) Evaluate(answer string) (Evaluation, error) {
	if !s.Active {
		return Evaluation{}, ErrSessionInactive
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return Evaluation{}, ErrSessionFinished
	}

	correct := q.CorrectAnswer()
	ev := Evaluation{
		Correct:       answer == correct,
		CorrectAnswer: correct,
	}

	if ev.Correct {
		s.Score++
	}
	s.CurrentIndex++

	return ev, nil
}

// Finished reports whether every question of the bank has been answered.
func (s *QuizSession) Finished() bool {
	return s.CurrentIndex >= s.Total()
}

// Deactivate stops accepting answers.
func (s *QuizSession) Deactivate() {
	s.Active = false
}

// Total returns the number of questions in a run.
func (s *QuizSession) Total() int {
	if s.bank == nil {
		return 0
	}
	return s.bank.Len()
}

// State derives the state machine position from the session fields.
func (s *QuizSession) State() QuizState {
	switch {
	case s.CurrentIndex > 0 && s.Finished():
		return StateFinished
	case s.Active:
		return StateInProgress
	default:
		return StateIdle
	}
}
