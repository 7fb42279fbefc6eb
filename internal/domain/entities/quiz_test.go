package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestBank(t *testing.T, n int) *QuestionBank {
	t.Helper()

	qs := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, Question{
			Text:         "q",
			Options:      [OptionsCount]string{"a", "b", "c", "d"},
			CorrectIndex: i % OptionsCount,
		})
	}

	bank, err := NewQuestionBank(qs)
	if err != nil {
		t.Fatal(err)
	}
	return bank
}

func TestQuizSessionInitialState(t *testing.T) {
	s := NewQuizSession(1, newTestBank(t, 2))

	if s.State() != StateIdle {
		t.Fatalf("State() = %s want %s", s.State(), StateIdle)
	}
	if _, err := s.Evaluate("a"); !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("Evaluate() on idle err = %v want %v", err, ErrSessionInactive)
	}
	if s.CurrentIndex != 0 || s.Score != 0 {
		t.Fatalf("idle evaluate mutated session: index=%d score=%d", s.CurrentIndex, s.Score)
	}
}

func TestQuizSessionRun(t *testing.T) {
	bank := newTestBank(t, 3)
	s := NewQuizSession(1, bank)

	first, err := s.Start(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if want, _ := bank.At(0); first != want {
		t.Fatalf("Start() returned %+v want %+v", first, want)
	}
	if s.State() != StateInProgress {
		t.Fatalf("State() = %s want %s", s.State(), StateInProgress)
	}
	if s.RunID == uuid.Nil {
		t.Fatal("Start() did not assign a run id")
	}

	// correct, wrong, correct
	answers := []string{"a", "a", "c"}
	wantCorrect := []bool{true, false, true}

	for i, answer := range answers {
		q1, _ := s.CurrentQuestion()
		q2, _ := s.CurrentQuestion()
		if q1 != q2 {
			t.Fatalf("CurrentQuestion() not stable at index %d", i)
		}

		ev, err := s.Evaluate(answer)
		if err != nil {
			t.Fatalf("Evaluate(%q) err = %v", answer, err)
		}
		if ev.Correct != wantCorrect[i] {
			t.Fatalf("answer %d correct = %v want %v", i, ev.Correct, wantCorrect[i])
		}
		if ev.CorrectAnswer != q1.CorrectAnswer() {
			t.Fatalf("CorrectAnswer = %q want %q", ev.CorrectAnswer, q1.CorrectAnswer())
		}
		if s.CurrentIndex != i+1 {
			t.Fatalf("CurrentIndex = %d want %d", s.CurrentIndex, i+1)
		}
		if s.Score < 0 || s.Score > s.CurrentIndex || s.CurrentIndex > s.Total() {
			t.Fatalf("invariant broken: score=%d index=%d total=%d", s.Score, s.CurrentIndex, s.Total())
		}
	}

	if !s.Finished() {
		t.Fatal("Finished() = false after last answer")
	}
	if s.State() != StateFinished {
		t.Fatalf("State() = %s want %s", s.State(), StateFinished)
	}
	if s.Score != 2 {
		t.Fatalf("Score = %d want 2", s.Score)
	}
	if _, ok := s.CurrentQuestion(); ok {
		t.Fatal("CurrentQuestion() ok = true on finished session")
	}
	if _, err := s.Evaluate("a"); !errors.Is(err, ErrSessionFinished) {
		t.Fatalf("Evaluate() on finished err = %v want %v", err, ErrSessionFinished)
	}
}

func TestQuizSessionRestartAfterFinish(t *testing.T) {
	s := NewQuizSession(1, newTestBank(t, 1))

	if _, err := s.Start(time.Now()); err != nil {
		t.Fatal(err)
	}
	firstRun := s.RunID
	if _, err := s.Evaluate("a"); err != nil {
		t.Fatal(err)
	}
	s.Deactivate()

	if s.State() != StateFinished {
		t.Fatalf("State() = %s want %s", s.State(), StateFinished)
	}

	if _, err := s.Start(time.Now()); err != nil {
		t.Fatal(err)
	}
	if s.Score != 0 || s.CurrentIndex != 0 {
		t.Fatalf("restart left score=%d index=%d", s.Score, s.CurrentIndex)
	}
	if s.State() != StateInProgress {
		t.Fatalf("State() = %s want %s", s.State(), StateInProgress)
	}
	if s.RunID == firstRun {
		t.Fatal("restart reused run id")
	}
}

func TestQuizSessionExactMatch(t *testing.T) {
	bank, err := NewQuestionBank([]Question{
		{Text: "capital?", Options: [OptionsCount]string{"Paris", "Rome", "Oslo", "Bern"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{"Paris", true},
		{"paris", false},
		{" Paris", false},
		{"Rome", false},
	}
	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			s := NewQuizSession(1, bank)
			if _, err := s.Start(time.Now()); err != nil {
				t.Fatal(err)
			}
			ev, err := s.Evaluate(tt.answer)
			if err != nil {
				t.Fatal(err)
			}
			if ev.Correct != tt.want {
				t.Fatalf("Evaluate(%q) correct = %v want %v", tt.answer, ev.Correct, tt.want)
			}
		})
	}
}

func TestQuizSessionReset(t *testing.T) {
	s := NewQuizSession(1, newTestBank(t, 2))
	if _, err := s.Start(time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Evaluate("a"); err != nil {
		t.Fatal(err)
	}

	s.Reset()

	if s.State() != StateIdle || s.CurrentIndex != 0 || s.Score != 0 {
		t.Fatalf("Reset() left state=%s index=%d score=%d", s.State(), s.CurrentIndex, s.Score)
	}
}

func TestQuizSessionWithoutBank(t *testing.T) {
	s := NewQuizSession(1, nil)
	if _, err := s.Start(time.Now()); !errors.Is(err, ErrEmptyBank) {
		t.Fatalf("Start() err = %v want %v", err, ErrEmptyBank)
	}
}
