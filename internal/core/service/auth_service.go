package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
)

// AuthService implements registration and credential checks.
type AuthService struct {
	repo   ports.UserRepository
	cost   int
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, cost: bcrypt.DefaultCost, logger: logger}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Register stores a new user. Only the username must be non-empty; passwords
// have no strength rules.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	// The unique index still guards against a concurrent signup that slipped
	// past the lookup above.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Authenticate returns domain.ErrInvalidCredentials for both an unknown
// username and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Debug().Str("username", username).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
