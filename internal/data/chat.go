package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/repo"
)

// chatRepo implements the chat registry repository
type chatRepo struct {
	db *sql.DB
}

// NewChatRepo creates a new chat registry repository
func NewChatRepo(db *sql.DB) repo.ChatRepo {
	return &chatRepo{db: db}
}

// EnsureRegistered inserts an unseen chat with monitoring disabled.
// A known chat is left untouched: the stored name is not refreshed.
func (r *chatRepo) EnsureRegistered(ctx context.Context, chatID int64, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO chats (chat_id, name, is_monitoring_enabled)
		VALUES (?, ?, 0)
	`, chatID, name)
	if err != nil {
		return fmt.Errorf("failed to register chat: %w", err)
	}
	return nil
}

// Get gets a chat by identifier
func (r *chatRepo) Get(ctx context.Context, chatID int64) (*domain.Chat, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, name, is_monitoring_enabled
		FROM chats
		WHERE chat_id = ?
	`, chatID)

	var chat domain.Chat
	err := row.Scan(&chat.ID, &chat.Name, &chat.MonitoringEnabled)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chat: %w", err)
	}
	return &chat, nil
}

// SetMonitoring sets the monitoring flag; an unknown chat id is a no-op
func (r *chatRepo) SetMonitoring(ctx context.Context, chatID int64, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE chats SET is_monitoring_enabled = ? WHERE chat_id = ?
	`, enabled, chatID)
	if err != nil {
		return fmt.Errorf("failed to set monitoring: %w", err)
	}
	return nil
}

// List lists chats in insertion order
func (r *chatRepo) List(ctx context.Context, filter domain.ChatFilter) ([]*domain.Chat, error) {
	query := `SELECT chat_id, name, is_monitoring_enabled FROM chats`
	switch filter {
	case domain.ChatFilterMonitored:
		query += ` WHERE is_monitoring_enabled = 1`
	case domain.ChatFilterUnmonitored:
		query += ` WHERE is_monitoring_enabled = 0`
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(&chat.ID, &chat.Name, &chat.MonitoringEnabled); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, &chat)
	}
	return chats, rows.Err()
}
