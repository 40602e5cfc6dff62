package ports

import (
	"context"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	// Create stores a new user and returns it with the storage-assigned ID.
	// A taken username yields domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
