package ports

import (
	"context"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

// EventInput is the DTO passed from the transport layer to EventService.
// Date and Time are raw form strings in domain.DateLayout / domain.TimeLayout.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
}

// EventService defines the event management use cases.
type EventService interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, in EventInput) (*domain.Event, error)
	Update(ctx context.Context, id int64, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}
