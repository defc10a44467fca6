package repo

import "context"

// BlacklistRepo is the forbidden-word list repository interface
type BlacklistRepo interface {
	// Add inserts a word; returns domain.ErrDuplicateWord if already present
	Add(ctx context.Context, word string) error

	// Remove deletes a word unconditionally; absence is not an error
	Remove(ctx context.Context, word string) error

	// List lists all words in insertion order
	List(ctx context.Context) ([]string, error)
}
