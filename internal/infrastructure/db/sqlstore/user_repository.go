package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

type UserRepository struct {
	db      DBTX
	dialect Dialect
}

func NewUserRepository(db DBTX, dialect Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query :=
		`INSERT INTO users (username, password_hash)
		 VALUES (?, ?)
		 RETURNING id`

	created := *user
	err := r.db.QueryRowContext(ctx, rebind(r.dialect, query),
		user.Username, user.PasswordHash).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query :=
		`SELECT id, username, password_hash FROM users
		 WHERE username = ?`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, rebind(r.dialect, query), username).
		Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
