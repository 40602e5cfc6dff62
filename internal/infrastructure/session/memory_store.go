// Package session holds the in-process session store used when no external
// session backend is configured.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

type entry struct {
	sess      domain.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in a map guarded by a mutex. Entries expire ttl
// after their last save. Expired entries are dropped on access, and Save
// sweeps the whole map at most once per ttl so abandoned sessions do not pile
// up.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if m.ttl > 0 && !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, domain.ErrSessionNotFound
	}

	return snapshot(&e.sess), nil
}

func (m *MemoryStore) Save(_ context.Context, sess *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	m.entries[sess.ID] = entry{
		sess:      *snapshot(sess),
		expiresAt: now.Add(m.ttl),
	}
	return nil
}

// sweep drops expired entries. Callers hold m.mu.
func (m *MemoryStore) sweep(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastSweep) < m.ttl {
		return
	}
	m.lastSweep = now
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Ping always succeeds; it lets the readiness probe treat every store alike.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// snapshot copies the exported state so callers never share flash slices
// with the stored entry.
func snapshot(s *domain.Session) *domain.Session {
	out := &domain.Session{
		ID:        s.ID,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
	}
	if len(s.Flashes) > 0 {
		out.Flashes = append([]domain.Flash(nil), s.Flashes...)
	}
	return out
}
