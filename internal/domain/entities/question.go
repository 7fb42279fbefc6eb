package entities

import (
	"errors"
	"fmt"
)

// OptionsCount is the number of answer options every question carries.
const OptionsCount = 4

var (
	ErrInvalidQuestion = errors.New("invalid question")
	ErrEmptyBank       = errors.New("question bank is empty")
)

// Question is a single multiple-choice quiz item.
type Question struct {
	Text         string               // prompt shown to the user
	Options      [OptionsCount]string // answer options in display order
	CorrectIndex int                  // zero-based index into Options
}

// NewQuestion validates and builds a Question.
func NewQuestion(text string, options [OptionsCount]string, correctIndex int) (Question, error) {
	if text == "" {
		return Question{}, fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if correctIndex < 0 || correctIndex >= OptionsCount {
		return Question{}, fmt.Errorf("%w: correct index %d out of range", ErrInvalidQuestion, correctIndex)
	}

	return Question{
		Text:         text,
		Options:      options,
		CorrectIndex: correctIndex,
	}, nil
}

// CorrectAnswer returns the text of the correct option.
func (q Question) CorrectAnswer() string {
	return q.Options[q.CorrectIndex]
}

// Choices returns the options as a slice in display order.
func (q Question) Choices() []string {
	choices := make([]string, OptionsCount)
	copy(choices, q.Options[:])
	return choices
}

// QuestionBank is the ordered, read-only set of questions served to every user.
// It is safe for concurrent reads.
type QuestionBank struct {
	questions []Question
}

// NewQuestionBank copies questions into a bank. It fails with ErrEmptyBank
// when there is nothing to serve.
func NewQuestionBank(questions []Question) (*QuestionBank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}

	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &QuestionBank{questions: qs}, nil
}

// Len returns the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// At returns the question at index i and false if i is out of range.
func (b *QuestionBank) At(i int) (Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[i], true
}
