package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// BotClient is the part of *tgbotapi.BotAPI the adapter uses.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	OnStart(ctx context.Context, msg entities.IncomingMessage) error
	OnQuizCommand(ctx context.Context, msg entities.IncomingMessage) error
	OnTextMessage(ctx context.Context, msg entities.IncomingMessage) error
}

type ResultService interface {
	Recent(ctx context.Context, userID int64, limit int) ([]entities.QuizResult, error)
}
