package telegram

import (
	"context"
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// Sender delivers quiz messages through the Bot API.
type Sender struct {
	bot BotClient
}

func NewSender(bot BotClient) *Sender {
	return &Sender{bot: bot}
}

// Send ignores ctx: the Bot API client has no context-aware send.
func (s *Sender) Send(_ context.Context, m entities.OutgoingMessage) error {
	msg := newPlainMessage(m.ChatID, m.Text)
	if len(m.Choices) > 0 {
		msg.ReplyMarkup = buildChoicesKeyboard(m.Choices)
	}

	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("send message to chat %d: %w", m.ChatID, err)
	}

	return nil
}
