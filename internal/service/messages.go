package service

import (
	"fmt"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

// CommandPrefix marks text that is a bot command rather than an answer.
const CommandPrefix = "/"

const (
	msgGreeting        = "Привет! Это бот-викторина.\nНажми /quiz чтобы начать."
	msgQuizStarted     = "Поехали! 🚀"
	msgNoQuestions     = "Вопросов нет."
	msgQuestionsOver   = "Вопросы закончились. Нажми /quiz заново."
	msgStartQuizFirst  = "Нажми /quiz чтобы начать викторину."
	msgCorrect         = "✅ Правильно!"
	msgWrong           = "❌ Неправильно."
	msgWrongWithAnswer = "❌ Неправильно. Правильный ответ: %s"
	msgQuizFinished    = "Конец викторины!\nРезультат: %d/%d"
	msgQuestion        = "Вопрос %d/%d:\n\n%s"
)

func textMessage(chatID int64, text string) entities.OutgoingMessage {
	return entities.OutgoingMessage{ChatID: chatID, Text: text}
}

// questionMessage renders the question at zero-based index with its options as choices.
func questionMessage(chatID int64, index, total int, q entities.Question) entities.OutgoingMessage {
	return entities.OutgoingMessage{
		ChatID:  chatID,
		Text:    fmt.Sprintf(msgQuestion, index+1, total, q.Text),
		Choices: q.Choices(),
	}
}
