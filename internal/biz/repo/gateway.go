package repo

import "context"

// MenuButton represents one selectable inline action
type MenuButton struct {
	Label string
	Data  string // opaque callback payload
}

// MessageGateway is the messaging transport interface
// Responsible for delivering outbound actions through the Telegram API
type MessageGateway interface {
	// SendText sends a plain text message
	SendText(ctx context.Context, chatID int64, text string) error

	// SendMenu sends a text message with a persistent reply keyboard
	SendMenu(ctx context.Context, chatID int64, text string, rows [][]string) error

	// SendInline sends a text message with inline buttons, one per row
	SendInline(ctx context.Context, chatID int64, text string, buttons []MenuButton) error

	// Reply replies to a specific message
	Reply(ctx context.Context, chatID int64, messageID int, text string) error

	// DeleteMessage removes a message from a chat
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	// SendDocument uploads a named file with a caption
	SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) error

	// AnswerCallback acknowledges an inline button press
	AnswerCallback(ctx context.Context, callbackID, text string) error

	// TextLimit returns the transport's maximum text message size in runes
	TextLimit() int
}
