package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"2024-06-01", true},
		{"2024-02-29", true},
		{"2024-02-30", false},
		{"2023-02-29", false},
		{"2024-13-01", false},
		{"24-06-01", false},
		{"", false},
	}

	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.valid && err != nil {
			t.Errorf("ParseDate(%q): unexpected error %v", tc.in, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidDateTimeFormat) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDateTimeFormat, got %v", tc.in, err)
		}
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"14:30", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"25:61", false},
		{"12:60", false},
		{"noon", false},
	}

	for _, tc := range cases {
		_, err := ParseTime(tc.in)
		if tc.valid && err != nil {
			t.Errorf("ParseTime(%q): unexpected error %v", tc.in, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidDateTimeFormat) {
			t.Errorf("ParseTime(%q): expected ErrInvalidDateTimeFormat, got %v", tc.in, err)
		}
	}
}

func TestEvent_StartsAt(t *testing.T) {
	d, _ := ParseDate("2024-06-01")
	tod, _ := ParseTime("14:30")
	e := Event{Date: d, Time: tod}

	want := time.Date(2024, time.June, 1, 14, 30, 0, 0, time.UTC)
	if got := e.StartsAt(nil); !got.Equal(want) {
		t.Fatalf("StartsAt: want %v, got %v", want, got)
	}
	if e.DateString() != "2024-06-01" || e.TimeString() != "14:30" {
		t.Fatalf("unexpected formatting: %s %s", e.DateString(), e.TimeString())
	}
}

func TestSession_SignInRequestsRenewal(t *testing.T) {
	s := NewSession("old")
	if s.Authenticated() || s.Modified() {
		t.Fatalf("fresh session must be anonymous and clean")
	}

	s.SignIn(7)
	if !s.Authenticated() || !s.NeedsRenewal() || !s.Modified() {
		t.Fatalf("sign-in must bind user and request renewal")
	}

	s.Renew("new")
	if s.ID != "new" || s.NeedsRenewal() {
		t.Fatalf("renew must swap id and clear flag")
	}

	s.SignOut()
	if s.Authenticated() {
		t.Fatalf("sign-out must clear user")
	}
}

func TestSession_PopFlashes(t *testing.T) {
	s := NewSession("id")
	if got := s.PopFlashes(); got != nil {
		t.Fatalf("expected no flashes, got %v", got)
	}

	s.AddFlash(FlashSuccess, "one")
	s.AddFlash(FlashDanger, "two")

	got := s.PopFlashes()
	if len(got) != 2 || got[0].Message != "one" || got[1].Category != FlashDanger {
		t.Fatalf("unexpected flashes: %+v", got)
	}
	if len(s.Flashes) != 0 {
		t.Fatalf("flashes must be cleared after pop")
	}
}

func TestSession_CurrentUser(t *testing.T) {
	s := NewSession("a")
	if _, err := s.CurrentUser(); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	s.SignIn(3)
	id, err := s.CurrentUser()
	if err != nil || id != 3 {
		t.Fatalf("expected user 3, got %d (%v)", id, err)
	}
}
