package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
	"github.com/chatwarden/chatwarden/internal/biz/repo"
)

// blacklistRepo implements the forbidden-word list repository
type blacklistRepo struct {
	db *sql.DB
}

// NewBlacklistRepo creates a new blacklist repository
func NewBlacklistRepo(db *sql.DB) repo.BlacklistRepo {
	return &blacklistRepo{db: db}
}

// Add inserts a word. The UNIQUE constraint rejects duplicates, surfaced as
// domain.ErrDuplicateWord rather than a driver error.
func (r *blacklistRepo) Add(ctx context.Context, word string) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO messages_black_list (message) VALUES (?)
	`, word)
	if err != nil {
		return fmt.Errorf("failed to add blacklist word: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check blacklist insert: %w", err)
	}
	if affected == 0 {
		return domain.ErrDuplicateWord
	}
	return nil
}

// Remove deletes a word; deleting an absent word is not an error
func (r *blacklistRepo) Remove(ctx context.Context, word string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages_black_list WHERE message = ?`, word)
	if err != nil {
		return fmt.Errorf("failed to remove blacklist word: %w", err)
	}
	return nil
}

// List lists all words in insertion order
func (r *blacklistRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message FROM messages_black_list ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blacklist: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}
