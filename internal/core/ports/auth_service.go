package ports

import (
	"context"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
