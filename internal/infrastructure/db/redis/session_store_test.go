package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client, ttl), mr
}

func TestSessionStore_SaveLoad(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	sess := domain.NewSession("abc")
	sess.SignIn(42)
	sess.AddFlash(domain.FlashSuccess, "Logged in successfully")

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("session:abc") {
		t.Fatalf("expected key session:abc")
	}
	if ttl := mr.TTL("session:abc"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", ttl)
	}

	got, err := store.Load(ctx, "abc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UserID != 42 || len(got.Flashes) != 1 || got.Flashes[0].Message != "Logged in successfully" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if got.Modified() {
		t.Fatalf("a freshly loaded session must not be marked modified")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, domain.NewSession("short")); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, "short"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	_ = store.Save(ctx, domain.NewSession("gone"))
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "gone"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("deleting a missing key must succeed, got %v", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping error")
	}
}
