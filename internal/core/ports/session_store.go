package ports

import (
	"context"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

// SessionStore keeps server-side session state keyed by session id.
type SessionStore interface {
	// Load returns domain.ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
