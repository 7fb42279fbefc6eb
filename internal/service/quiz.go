package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// QuizOptions controls answer feedback.
type QuizOptions struct {
	ShowCorrectOnWrong bool // include the correct option in wrong-answer feedback
}

// QuizService drives users through the shared question bank.
// Every event touches only the session of its own user.
type QuizService struct {
	sessions SessionStore
	sender   Sender
	results  ResultRecorder
	opts     QuizOptions
	logger   *zap.Logger
	now      func() time.Time
}

func NewQuizService(
	sessions SessionStore,
	sender Sender,
	results ResultRecorder,
	opts QuizOptions,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		sessions: sessions,
		sender:   sender,
		results:  results,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// OnStart resets the user's session to idle and greets the user.
func (s *QuizService) OnStart(ctx context.Context, msg entities.IncomingMessage) error {
	s.sessions.WithSession(msg.UserID, func(session *entities.QuizSession) {
		session.Reset()
	})

	return s.deliver(ctx, msg.UserID, []entities.OutgoingMessage{
		textMessage(msg.ChatID, msgGreeting),
	})
}

// OnQuizCommand starts a new run and sends the first question.
func (s *QuizService) OnQuizCommand(ctx context.Context, msg entities.IncomingMessage) error {
	var out []entities.OutgoingMessage

	s.sessions.WithSession(msg.UserID, func(session *entities.QuizSession) {
		q, err := session.Start(s.now())
		if err != nil {
			s.logger.Error("failed to start quiz",
				zap.Int64("user_id", msg.UserID),
				zap.Error(err),
			)
			out = append(out, textMessage(msg.ChatID, msgNoQuestions))
			return
		}

		s.logger.Info("quiz started",
			zap.Int64("user_id", msg.UserID),
			zap.String("run_id", session.RunID.String()),
		)

		out = append(out,
			textMessage(msg.ChatID, msgQuizStarted),
			questionMessage(msg.ChatID, session.CurrentIndex, session.Total(), q),
		)
	})

	return s.deliver(ctx, msg.UserID, out)
}

// OnTextMessage treats text as an answer to the current question.
func (s *QuizService) OnTextMessage(ctx context.Context, msg entities.IncomingMessage) error {
	var (
		out    []entities.OutgoingMessage
		result *entities.QuizResult
	)

	s.sessions.WithSession(msg.UserID, func(session *entities.QuizSession) {
		out, result = s.answer(session, msg)
	})

	if result != nil {
		s.saveResult(ctx, *result)
	}

	return s.deliver(ctx, msg.UserID, out)
}

func (s *QuizService) answer(
	session *entities.QuizSession, msg entities.IncomingMessage,
) ([]entities.OutgoingMessage, *entities.QuizResult) {
	if !session.Active {
		if strings.HasPrefix(msg.Text, CommandPrefix) {
			return nil, nil
		}
		return []entities.OutgoingMessage{textMessage(msg.ChatID, msgStartQuizFirst)}, nil
	}

	if _, ok := session.CurrentQuestion(); !ok {
		session.Deactivate()
		return []entities.OutgoingMessage{textMessage(msg.ChatID, msgQuestionsOver)}, nil
	}

	ev, err := session.Evaluate(strings.TrimSpace(msg.Text))
	if err != nil {
		s.logger.Warn("answer rejected",
			zap.Int64("user_id", msg.UserID),
			zap.Error(err),
		)
		session.Deactivate()
		return []entities.OutgoingMessage{textMessage(msg.ChatID, msgQuestionsOver)}, nil
	}

	out := []entities.OutgoingMessage{textMessage(msg.ChatID, s.feedback(ev))}

	if session.Finished() {
		session.Deactivate()

		res := entities.NewQuizResult(session, s.now())
		s.logger.Info("quiz finished",
			zap.Int64("user_id", msg.UserID),
			zap.String("run_id", res.RunID.String()),
			zap.Int("score", res.Score),
			zap.Int("total", res.Total),
		)

		out = append(out, textMessage(msg.ChatID, fmt.Sprintf(msgQuizFinished, res.Score, res.Total)))
		return out, &res
	}

	next, _ := session.CurrentQuestion()
	out = append(out, questionMessage(msg.ChatID, session.CurrentIndex, session.Total(), next))

	return out, nil
}

func (s *QuizService) feedback(ev entities.Evaluation) string {
	switch {
	case ev.Correct:
		return msgCorrect
	case s.opts.ShowCorrectOnWrong:
		return fmt.Sprintf(msgWrongWithAnswer, ev.CorrectAnswer)
	default:
		return msgWrong
	}
}

func (s *QuizService) saveResult(ctx context.Context, res entities.QuizResult) {
	if err := s.results.Save(ctx, res); err != nil {
		s.logger.Error("failed to save quiz result",
			zap.Int64("user_id", res.UserID),
			zap.String("run_id", res.RunID.String()),
			zap.Error(err),
		)
	}
}

// deliver sends out in order and stops at the first failure.
// It runs outside the session lock.
func (s *QuizService) deliver(ctx context.Context, userID int64, out []entities.OutgoingMessage) error {
	for _, m := range out {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.sender.Send(ctx, m); err != nil {
			return fmt.Errorf("deliver to user %d: %w", userID, err)
		}
	}
	return nil
}
