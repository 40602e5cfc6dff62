package ports

import (
	"context"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

// EventRepository handles event persistence. Every mutating call is a single
// committed write.
type EventRepository interface {
	// List returns all events ordered by date, then time, then id.
	List(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id int64) (*domain.Event, error)
	// Create stores e and sets e.ID.
	Create(ctx context.Context, e *domain.Event) error
	// Update overwrites every field of the event with e.ID.
	// Returns domain.ErrEventNotFound when no row matched.
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int64) error
}
