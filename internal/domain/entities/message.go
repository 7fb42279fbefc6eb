package entities

// IncomingMessage is a text event received from a chat.
type IncomingMessage struct {
	UserID int64
	ChatID int64
	Text   string
}

// OutgoingMessage is a render request for the chat transport.
// Choices, when present, are offered as selectable replies.
type OutgoingMessage struct {
	ChatID  int64
	Text    string
	Choices []string
}
