package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc handles one command for a chat.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed command with the user it came from and
// answers with a generic error instead of leaving the user without a reply.
func (h *Handler) withErrorHandling(userID int64, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		h.logger.Error("command failed",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)

		if sendErr := h.send(newPlainMessage(chatID, msgInternalError)); sendErr != nil {
			return sendErr
		}
		return nil
	}
}
