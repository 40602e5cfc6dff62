package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parixitpatel/EventmanagerNew/internal/api/middleware"
	"github.com/parixitpatel/EventmanagerNew/internal/api/view"
)

// render pops the pending flashes into the page so they show exactly once.
func render(c echo.Context, code int, page, title string, data any) error {
	sess := middleware.CurrentSession(c)
	return c.Render(code, page, view.Page{
		Title:         title,
		Flashes:       sess.PopFlashes(),
		Authenticated: sess.Authenticated(),
		Data:          data,
	})
}

// flashRedirect queues a message and answers with 302 to path.
func flashRedirect(c echo.Context, category, message, path string) error {
	middleware.CurrentSession(c).AddFlash(category, message)
	return c.Redirect(http.StatusFound, path)
}

// pathID reads the :id route parameter. Anything that is not a positive
// integer is reported as missing.
func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
