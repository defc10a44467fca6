package repo

import (
	"context"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
)

// ChatRepo is the chat registry repository interface
// Responsible for tracking every chat the bot has observed (SQLite)
type ChatRepo interface {
	// EnsureRegistered inserts an unseen chat with monitoring disabled.
	// Idempotent: a known chat is left untouched (the name is not refreshed).
	EnsureRegistered(ctx context.Context, chatID int64, name string) error

	// Get gets a chat by identifier, (nil, nil) when unknown
	Get(ctx context.Context, chatID int64) (*domain.Chat, error)

	// SetMonitoring sets the monitoring flag; no-op for unknown chats
	SetMonitoring(ctx context.Context, chatID int64, enabled bool) error

	// List lists chats in insertion order, filtered by monitoring state
	List(ctx context.Context, filter domain.ChatFilter) ([]*domain.Chat, error)
}
