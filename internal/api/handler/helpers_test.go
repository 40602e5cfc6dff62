package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/parixitpatel/EventmanagerNew/internal/api/middleware"
	"github.com/parixitpatel/EventmanagerNew/internal/api/view"
	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Renderer = view.MustRenderer()
	e.Validator = NewValidator()
	return e
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func expectFlash(t *testing.T, c echo.Context, category, message string) {
	t.Helper()
	flashes := middleware.CurrentSession(c).PopFlashes()
	if len(flashes) != 1 || flashes[0].Category != category || flashes[0].Message != message {
		t.Fatalf("expected %s flash %q, got %+v", category, message, flashes)
	}
}

func signedIn(c echo.Context) *domain.Session {
	sess := middleware.CurrentSession(c)
	sess.SignIn(1)
	return sess
}
