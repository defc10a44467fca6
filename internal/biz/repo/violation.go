package repo

import (
	"context"

	"github.com/chatwarden/chatwarden/internal/biz/domain"
)

// ViolationRepo is the violation history repository interface.
// The history is append-only; records are never updated.
type ViolationRepo interface {
	// Append records a violation
	Append(ctx context.Context, v *domain.Violation) error

	// ListAll lists all violations, oldest first
	ListAll(ctx context.Context) ([]*domain.Violation, error)

	// PurgeAll deletes the entire history
	PurgeAll(ctx context.Context) error
}
