package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/repo"
)

// violationRepo implements the violation history repository
type violationRepo struct {
	db *sql.DB
}

// NewViolationRepo creates a new violation history repository
func NewViolationRepo(db *sql.DB) repo.ViolationRepo {
	return &violationRepo{db: db}
}

// Append records a violation
func (r *violationRepo) Append(ctx context.Context, v *domain.Violation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages_history (chat_name, user_name, message_text, sent_datetime, matched_forbidden_words)
		VALUES (?, ?, ?, ?, ?)
	`,
		v.ChatName,
		v.Username,
		v.MessageText,
		v.SentAt.Format(domain.TimeLayout),
		v.MatchedList(),
	)
	if err != nil {
		return fmt.Errorf("failed to append violation: %w", err)
	}
	return nil
}

// ListAll lists all violations, oldest first
func (r *violationRepo) ListAll(ctx context.Context) ([]*domain.Violation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_name, user_name, message_text, sent_datetime, matched_forbidden_words
		FROM messages_history
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var violations []*domain.Violation
	for rows.Next() {
		var v domain.Violation
		var sentAt, matched string
		if err := rows.Scan(&v.ID, &v.ChatName, &v.Username, &v.MessageText, &sentAt, &matched); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		v.SentAt, _ = time.ParseInLocation(domain.TimeLayout, sentAt, time.Local)
		if matched != "" {
			v.MatchedWords = strings.Split(matched, ", ")
		}
		violations = append(violations, &v)
	}
	return violations, rows.Err()
}

// PurgeAll deletes the entire history
func (r *violationRepo) PurgeAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages_history`)
	if err != nil {
		return fmt.Errorf("failed to purge history: %w", err)
	}
	return nil
}
