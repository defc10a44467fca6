package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chatwarden/chatwarden/internal/biz/repo"

	tb "gopkg.in/telebot.v3"
	_ "modernc.org/sqlite"
)

// Repositories contains all repositories
type Repositories struct {
	Chat      repo.ChatRepo
	Blacklist repo.BlacklistRepo
	Violation repo.ViolationRepo
	Gateway   repo.MessageGateway

	db *sql.DB
}

// NewRepositories opens the database, creates the schema and wires all
// repositories. The three tables share one sqlite file.
func NewRepositories(bot *tb.Bot, dbPath string) (*Repositories, error) {
	db, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Chat:      NewChatRepo(db),
		Blacklist: NewBlacklistRepo(db),
		Violation: NewViolationRepo(db),
		Gateway:   NewTelegramGateway(bot),
		db:        db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.db.Close()
}

func openStore(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS chats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id INTEGER UNIQUE,
			name TEXT,
			is_monitoring_enabled INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create chats table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS messages_black_list (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT UNIQUE
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create messages_black_list table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS messages_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_name TEXT,
			user_name TEXT,
			message_text TEXT,
			sent_datetime TEXT,
			matched_forbidden_words TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create messages_history table: %w", err)
	}

	return nil
}
