package domain

// ChatType represents the conversation kind
type ChatType string

const (
	ChatTypeGroup   ChatType = "group"
	ChatTypePrivate ChatType = "private"
)

// Chat represents a chat the bot has observed
type Chat struct {
	ID                int64 // Telegram chat identifier
	Name              string
	MonitoringEnabled bool
}

// ChatFilter selects chats by monitoring state
type ChatFilter int

const (
	ChatFilterAll ChatFilter = iota
	ChatFilterMonitored
	ChatFilterUnmonitored
)

// InboundMessage represents a message received from the gateway
type InboundMessage struct {
	ChatID    int64
	ChatName  string
	ChatType  ChatType
	MessageID int
	Username  string // empty for anonymous senders
	Text      string
}

// IsPrivate checks if the message came from a private conversation
func (m *InboundMessage) IsPrivate() bool {
	return m.ChatType == ChatTypePrivate
}
