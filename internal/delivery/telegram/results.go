package telegram

import (
	"context"
	"errors"

	"github.com/aliskhannn/quiz-bot/internal/service"
)

// handleResults shows the latest finished runs of the user.
func (h *Handler) handleResults(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		results, err := h.resultService.Recent(ctx, userID, resultsLimit)
		if errors.Is(err, service.ErrHistoryDisabled) {
			return h.send(newPlainMessage(chatID, msgHistoryUnavailable))
		}
		if err != nil {
			return err
		}

		if len(results) == 0 {
			return h.send(newPlainMessage(chatID, msgNoResults))
		}

		return h.send(newPlainMessage(chatID, formatResults(results)))
	}
}
