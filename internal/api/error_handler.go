package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parixitpatel/EventmanagerNew/internal/api/middleware"
	"github.com/parixitpatel/EventmanagerNew/internal/api/view"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Keeps the status of echo's own errors (unknown route, bad method, bad form).
//   - Logs anything else and answers 500 without leaking the cause.
//   - Renders the shared error page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		sess := middleware.CurrentSession(c)
		if rerr := c.Render(code, view.PageError, view.Page{
			Title:         http.StatusText(code),
			Authenticated: sess.Authenticated(),
			Data:          view.ErrorData{Code: code, Message: msg},
		}); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, "Page not found"
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Domain errors are turned into flashes by the handlers; whatever reaches
	// this point is unexpected.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Please try again later."
}
