package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
)

// LoginRequiredMessage is flashed when an anonymous visitor hits a guarded route.
const LoginRequiredMessage = "Please login to access this page"

// RequireSession lets the request through only when a user is bound to the
// session. Anyone else is sent to loginPath without reaching the handler.
func RequireSession(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			userID, err := sess.CurrentUser()
			if errors.Is(err, domain.ErrUnauthenticated) {
				sess.AddFlash(domain.FlashWarning, LoginRequiredMessage)
				return c.Redirect(http.StatusFound, loginPath)
			}

			c.Set("user_id", userID)
			return next(c)
		}
	}
}
