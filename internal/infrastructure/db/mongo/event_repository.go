package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{db: db, col: db.Collection(collectionEvents)}
}

type mongoEvent struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Date        string `bson:"date"`
	Time        string `bson:"time"`
	Location    string `bson:"location"`
}

func toDoc(e *domain.Event) mongoEvent {
	return mongoEvent{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.DateString(),
		Time:        e.TimeString(),
		Location:    e.Location,
	}
}

func (d mongoEvent) toDomain() (*domain.Event, error) {
	date, err := domain.ParseDate(d.Date)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", d.ID, err)
	}
	tod, err := domain.ParseTime(d.Time)
	if err != nil {
		return nil, fmt.Errorf("event %d: %w", d.ID, err)
	}
	return &domain.Event{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Date:        date,
		Time:        tod,
		Location:    d.Location,
	}, nil
}

// List returns every event sorted by date, time and id.
func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEvent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]domain.Event, 0, len(docs))
	for _, d := range docs {
		e, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d mongoEvent
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return d.toDomain()
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionEvents)
	if err != nil {
		return err
	}

	doc := toDoc(e)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID = id
	return nil
}

func (r *EventRepository) Update(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDoc(e)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"date":        doc.Date,
		"time":        doc.Time,
		"location":    doc.Location,
	}})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
