// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quiz-bot/internal/domain/entities"
)

const (
	msgInternalError      = "Что‑то пошло не так. Попробуйте позже."
	msgHistoryUnavailable = "История результатов недоступна."
	msgNoResults          = "Вы ещё не прошли ни одной викторины.\nНажми /quiz чтобы начать."
	msgResultsHeader      = "📊 Последние результаты:"
)

const (
	resultsLimit = 5
	dateLayout   = "02.01.2006 15:04"
)

// newPlainMessage creates a plain message without parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// formatResults renders results as a numbered list, newest first.
func formatResults(results []entities.QuizResult) string {
	var sb strings.Builder
	sb.WriteString(msgResultsHeader)
	sb.WriteString("\n")

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n%d. %d/%d — %s", i+1, r.Score, r.Total, r.FinishedAt.UTC().Format(dateLayout)))
	}

	return sb.String()
}
