package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

const (
	cmdStart   = "start"
	cmdQuiz    = "quiz"
	cmdResults = "results"
)

var botCommands = []tgbotapi.BotCommand{
	{Command: cmdStart, Description: "Запустить бота"},
	{Command: cmdQuiz, Description: "Начать викторину"},
	{Command: cmdResults, Description: "Последние результаты"},
}

type Handler struct {
	bot           BotClient
	logger        *zap.Logger
	quizService   QuizService
	resultService ResultService
	updateTimeout int
}

func NewHandler(
	bot BotClient,
	logger *zap.Logger,
	quizService QuizService,
	resultService ResultService,
	updateTimeout int,
) *Handler {
	return &Handler{
		bot:           bot,
		logger:        logger,
		quizService:   quizService,
		resultService: resultService,
		updateTimeout: updateTimeout,
	}
}

// RegisterCommands publishes the command menu shown by Telegram clients.
func (h *Handler) RegisterCommands() error {
	_, err := h.bot.Request(tgbotapi.NewSetMyCommands(botCommands...))
	return err
}

// Run polls updates and handles them one at a time until ctx is done
// or the update channel is closed.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = h.updateTimeout

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil || m.From == nil || m.Chat == nil {
		h.logger.Debug("update without message")
		return
	}

	// Only text messages take part in the quiz.
	if m.Text == "" {
		return
	}

	h.logger.Debug("update received",
		zap.Int64("user_id", m.From.ID),
		zap.Int64("chat_id", m.Chat.ID),
		zap.String("text", m.Text),
	)

	in := entities.IncomingMessage{
		UserID: m.From.ID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}

	var err error
	switch {
	case !m.IsCommand():
		err = h.quizService.OnTextMessage(ctx, in)
	case m.Command() == cmdStart:
		err = h.quizService.OnStart(ctx, in)
	case m.Command() == cmdQuiz:
		err = h.quizService.OnQuizCommand(ctx, in)
	case m.Command() == cmdResults:
		err = h.withErrorHandling(in.UserID, h.handleResults(in.UserID))(ctx, in.ChatID)
	default:
		// Unknown commands count as answer attempts during a quiz.
		err = h.quizService.OnTextMessage(ctx, in)
	}

	if err != nil {
		h.logger.Error("failed to handle message",
			zap.Int64("user_id", in.UserID),
			zap.Error(err),
		)
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
