package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

func TestSenderWithChoices(t *testing.T) {
	bot := &fakeBot{}
	s := NewSender(bot)

	err := s.Send(context.Background(), entities.OutgoingMessage{
		ChatID:  42,
		Text:    "Вопрос 1/1:\n\n2+2?",
		Choices: []string{"3", "4", "5", "6"},
	})
	if err != nil {
		t.Fatal(err)
	}

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T want MessageConfig", bot.sent[0])
	}
	if msg.ChatID != 42 {
		t.Fatalf("ChatID = %d want 42", msg.ChatID)
	}

	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok {
		t.Fatalf("ReplyMarkup %T want ReplyKeyboardMarkup", msg.ReplyMarkup)
	}
	if !kb.OneTimeKeyboard || !kb.ResizeKeyboard {
		t.Fatalf("keyboard = %+v want one-time and resized", kb)
	}
	if len(kb.Keyboard) != 4 {
		t.Fatalf("got %d rows want 4", len(kb.Keyboard))
	}
	for i, want := range []string{"3", "4", "5", "6"} {
		if len(kb.Keyboard[i]) != 1 || kb.Keyboard[i][0].Text != want {
			t.Fatalf("row %d = %+v want single button %q", i, kb.Keyboard[i], want)
		}
	}
}

func TestSenderPlainText(t *testing.T) {
	bot := &fakeBot{}
	s := NewSender(bot)

	if err := s.Send(context.Background(), entities.OutgoingMessage{ChatID: 1, Text: "✅ Правильно!"}); err != nil {
		t.Fatal(err)
	}

	msg := bot.sent[0].(tgbotapi.MessageConfig)
	if msg.ReplyMarkup != nil {
		t.Fatalf("ReplyMarkup = %+v want nil", msg.ReplyMarkup)
	}
}

func TestSenderError(t *testing.T) {
	sendErr := errors.New("forbidden: bot was blocked by the user")
	s := NewSender(&fakeBot{sendErr: sendErr})

	err := s.Send(context.Background(), entities.OutgoingMessage{ChatID: 1, Text: "hi"})
	if !errors.Is(err, sendErr) {
		t.Fatalf("Send() err = %v want %v", err, sendErr)
	}
}
