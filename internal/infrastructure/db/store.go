// Package db picks the persistence backend named by DATABASE_URL and hands
// back the repositories for it.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
	mongostore "github.com/parixitpatel/EventmanagerNew/internal/infrastructure/db/mongo"
	"github.com/parixitpatel/EventmanagerNew/internal/infrastructure/db/sqlstore"
)

// Backend names the storage engine behind a Store.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMongo    Backend = "mongo"
)

var ErrUnsupportedURL = errors.New("unsupported database url")

// Target is a parsed DATABASE_URL.
type Target struct {
	Backend Backend
	// DSN is what the driver receives: a file path for sqlite, the URL itself
	// for postgres and mongo.
	DSN string
}

// ParseURL maps a DATABASE_URL onto a backend.
//
//	sqlite://events.db       -> sqlite file events.db
//	sqlite:///var/events.db  -> sqlite file var/events.db
//	sqlite://:memory:        -> in-memory sqlite
//	postgres://... postgresql://...
//	mongodb://... mongodb+srv://...
func ParseURL(raw string) (Target, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(raw), "://")
	if !ok {
		return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			return Target{}, fmt.Errorf("%w: missing sqlite path", ErrUnsupportedURL)
		}
		return Target{Backend: BackendSQLite, DSN: path}, nil
	case "postgres", "postgresql":
		return Target{Backend: BackendPostgres, DSN: raw}, nil
	case "mongodb", "mongodb+srv":
		return Target{Backend: BackendMongo, DSN: raw}, nil
	default:
		return Target{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, scheme)
	}
}

// Options carries settings that only some backends read.
type Options struct {
	MongoDatabase string
}

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Backend Backend
	Users   ports.UserRepository
	Events  ports.EventRepository

	ping  func(context.Context) error
	close func(context.Context) error
}

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

// Open connects to the backend named by rawURL, applies schema setup and
// returns the wired repositories.
func Open(ctx context.Context, rawURL string, opts Options) (*Store, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	switch target.Backend {
	case BackendMongo:
		client, database, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      target.DSN,
			Database: opts.MongoDatabase,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend: BackendMongo,
			Users:   mongostore.NewUserRepository(database),
			Events:  mongostore.NewEventRepository(database),
			ping:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:   client.Disconnect,
		}, nil
	default:
		dialect := sqlstore.DialectSQLite
		if target.Backend == BackendPostgres {
			dialect = sqlstore.DialectPostgres
		}
		sqlDB, err := sqlstore.Open(ctx, dialect, target.DSN)
		if err != nil {
			return nil, err
		}
		return &Store{
			Backend: target.Backend,
			Users:   sqlstore.NewUserRepository(sqlDB, dialect),
			Events:  sqlstore.NewEventRepository(sqlDB, dialect),
			ping:    sqlDB.PingContext,
			close:   func(context.Context) error { return sqlDB.Close() },
		}, nil
	}
}
