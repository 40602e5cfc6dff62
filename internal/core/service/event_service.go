package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
)

type eventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) ports.EventService {
	return &eventService{repo: repo, log: log}
}

func (s *eventService) List(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Get(ctx context.Context, id int64) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates the date and time strings and persists a new event.
func (s *eventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	event, err := buildEvent(0, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Int64("event_id", event.ID).Str("date", event.DateString()).Msg("event created")
	return event, nil
}

// Update replaces every field of an existing event. Nothing is changed unless
// all fields are valid.
func (s *eventService) Update(ctx context.Context, id int64, in ports.EventInput) (*domain.Event, error) {
	// 1. The event must exist before input is considered.
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	// 2. Validate everything before any write.
	event, err := buildEvent(id, in)
	if err != nil {
		return nil, err
	}

	// 3. Single write; last writer wins.
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info().Int64("event_id", id).Msg("event updated")
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("event_id", id).Msg("event deleted")
	return nil
}

func buildEvent(id int64, in ports.EventInput) (*domain.Event, error) {
	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	tod, err := domain.ParseTime(in.Time)
	if err != nil {
		return nil, err
	}
	return &domain.Event{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Time:        tod,
		Location:    in.Location,
	}, nil
}
