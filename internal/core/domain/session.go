package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Flash categories understood by the page templates.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Session is the server-side state bound to a browser cookie. A zero UserID
// means nobody is signed in.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	Flashes   []Flash   `json:"flashes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	modified bool
	renew    bool
}

// NewSession returns an empty anonymous session with the given id.
func NewSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now().UTC()}
}

// Authenticated reports whether a user is bound to the session.
func (s *Session) Authenticated() bool {
	return s.UserID != 0
}

// CurrentUser returns the bound user id, or ErrUnauthenticated.
func (s *Session) CurrentUser() (int64, error) {
	if !s.Authenticated() {
		return 0, ErrUnauthenticated
	}
	return s.UserID, nil
}

// SignIn binds userID and asks for a fresh session id so a pre-login id
// cannot be reused.
func (s *Session) SignIn(userID int64) {
	s.UserID = userID
	s.modified = true
	s.renew = true
}

// SignOut clears the bound user. It is a no-op on anonymous sessions apart
// from marking the session dirty.
func (s *Session) SignOut() {
	s.UserID = 0
	s.modified = true
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
	s.modified = true
}

// PopFlashes returns and clears all queued messages.
func (s *Session) PopFlashes() []Flash {
	if len(s.Flashes) == 0 {
		return nil
	}
	out := s.Flashes
	s.Flashes = nil
	s.modified = true
	return out
}

// Modified reports whether the session changed since it was loaded.
func (s *Session) Modified() bool { return s.modified }

// NeedsRenewal reports whether the id must be rotated before saving.
func (s *Session) NeedsRenewal() bool { return s.renew }

// Renew replaces the session id and clears the renewal flag.
func (s *Session) Renew(id string) {
	s.ID = id
	s.renew = false
	s.modified = true
}
