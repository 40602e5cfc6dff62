package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parixitpatel/EventmanagerNew/internal/api/middleware"
	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, username, password string) (*domain.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: 1, Username: username}, nil
		},
	}
	h := NewAuthHandler(stub, nil, zerolog.Nop())

	req := formRequest(http.MethodPost, "/signup", url.Values{"username": {"alice"}, "password": {"secret"}})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")
	expectFlash(t, c, domain.FlashSuccess, msgSignedUp)
}

func TestAuthHandler_Signup_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		err    error
		called bool
		msg    string
	}{
		{"duplicate", url.Values{"username": {"bob"}, "password": {"pw"}}, domain.ErrDuplicateUsername, true, msgUsernameTaken},
		{"too long", url.Values{"username": {"bob"}, "password": {"pw"}}, domain.ErrPasswordTooLong, true, msgPasswordTooLong},
		{"missing username", url.Values{"password": {"pw"}}, nil, false, msgCredentialsRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			called := false
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
					called = true
					return nil, tt.err
				},
			}
			h := NewAuthHandler(stub, nil, zerolog.Nop())

			rec := httptest.NewRecorder()
			c := e.NewContext(formRequest(http.MethodPost, "/signup", tt.form), rec)

			if err := h.Signup(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if called != tt.called {
				t.Fatalf("service called = %v, want %v", called, tt.called)
			}
			expectRedirect(t, rec, "/signup")
			expectFlash(t, c, domain.FlashDanger, tt.msg)
		})
	}
}

func TestAuthHandler_Signup_EmptyPassword(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			called = true
			if username != "bob" || password != "" {
				t.Fatalf("unexpected args: %q %q", username, password)
			}
			return &domain.User{ID: 2, Username: username}, nil
		},
	}
	h := NewAuthHandler(stub, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/signup", url.Values{"username": {"bob"}, "password": {""}}), rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	expectRedirect(t, rec, "/login")
	expectFlash(t, c, domain.FlashSuccess, msgSignedUp)
}

func TestAuthHandler_Signup_StorageErrorPropagates(t *testing.T) {
	e := newTestEcho()
	boom := errors.New("db down")
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, boom
		},
	}
	h := NewAuthHandler(stub, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/signup", url.Values{"username": {"a"}, "password": {"b"}}), rec)

	if err := h.Signup(c); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: 42, Username: "alice"}, nil
		},
	}
	h := NewAuthHandler(stub, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"secret"}}), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/")

	sess := middleware.CurrentSession(c)
	if sess.UserID != 42 {
		t.Fatalf("expected user 42 bound to session, got %d", sess.UserID)
	}
	if !sess.NeedsRenewal() {
		t.Fatalf("login must request a new session id")
	}
	expectFlash(t, c, domain.FlashSuccess, msgLoggedIn)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}}), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, msgInvalidCredentials) {
		t.Fatalf("expected error message in page")
	}
	if !strings.Contains(body, `value="alice"`) {
		t.Fatalf("expected username to be kept in the form")
	}
	if middleware.CurrentSession(c).Authenticated() {
		t.Fatalf("session must stay anonymous")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, nil, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/logout", nil), rec)
	signedIn(c)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")
	if middleware.CurrentSession(c).Authenticated() {
		t.Fatalf("expected anonymous session after logout")
	}
	expectFlash(t, c, domain.FlashSuccess, msgLoggedOut)
}

func TestAuthHandler_Pages(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, nil, zerolog.Nop())

	for path, fn := range map[string]echo.HandlerFunc{
		"/signup": h.SignupForm,
		"/login":  h.LoginForm,
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
		if err := fn(c); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `action="`+path+`"`) {
			t.Fatalf("%s: unexpected page (%d)", path, rec.Code)
		}
	}
}
