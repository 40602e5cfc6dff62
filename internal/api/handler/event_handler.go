package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parixitpatel/EventmanagerNew/internal/api/metrics"
	"github.com/parixitpatel/EventmanagerNew/internal/api/view"
	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
)

const (
	msgInvalidDateTime = "Invalid date or time format"
	msgEventNotFound   = "Event not found"
	msgEventAdded      = "Event added successfully"
	msgEventUpdated    = "Event updated successfully"
	msgEventDeleted    = "Event deleted successfully"
)

// EventHandler serves the event management pages. Every route is mounted
// behind middleware.RequireSession.
type EventHandler struct {
	events  ports.EventService
	metrics *metrics.Metrics
}

func NewEventHandler(events ports.EventService, m *metrics.Metrics) *EventHandler {
	return &EventHandler{events: events, metrics: m}
}

// Index lists every event, earliest first.
//
// @Summary      List events
// @Tags         events
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Failure      302  "Redirect to /login without a session"
// @Router       / [get]
func (h *EventHandler) Index(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}
	h.metrics.Listed(len(events))
	return render(c, http.StatusOK, view.PageIndex, "Events", events)
}

// AddForm renders the empty event form.
//
// @Summary      New event page
// @Tags         events
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /add [get]
func (h *EventHandler) AddForm(c echo.Context) error {
	return render(c, http.StatusOK, view.PageAddEvent, "Add Event", nil)
}

// Add creates an event from the submitted form.
//
// @Summary      Create event
// @Tags         events
// @Accept       x-www-form-urlencoded
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Param        date         formData  string  true   "Date (YYYY-MM-DD)"
// @Param        time         formData  string  true   "Time (HH:MM)"
// @Param        location     formData  string  false  "Location"
// @Success      302  "Redirect to / on success, back to /add on invalid input"
// @Router       /add [post]
func (h *EventHandler) Add(c echo.Context) error {
	in, msg, err := bindEvent(c)
	if err != nil {
		return err
	}
	if msg != "" {
		return flashRedirect(c, domain.FlashDanger, msg, "/add")
	}

	if _, err := h.events.Create(c.Request().Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidDateTimeFormat) {
			return flashRedirect(c, domain.FlashDanger, msgInvalidDateTime, "/add")
		}
		return err
	}

	h.metrics.EventMutation(metrics.OpCreate)
	return flashRedirect(c, domain.FlashSuccess, msgEventAdded, "/")
}

// EditForm renders the form pre-filled with the stored event.
//
// @Summary      Edit event page
// @Tags         events
// @Produce      html
// @Param        id   path      int  true  "Event ID"
// @Success      200  {string}  string  "HTML page"
// @Failure      302  "Redirect to / when the event does not exist"
// @Router       /edit/{id} [get]
func (h *EventHandler) EditForm(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
	}

	event, err := h.events.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
		}
		return err
	}
	return render(c, http.StatusOK, view.PageEditEvent, "Edit Event", event)
}

// Edit replaces every field of an existing event. Nothing is written unless
// the whole form is valid.
//
// @Summary      Update event
// @Tags         events
// @Accept       x-www-form-urlencoded
// @Param        id           path      int     true   "Event ID"
// @Param        title        formData  string  false  "Title"
// @Param        description  formData  string  false  "Description"
// @Param        date         formData  string  true   "Date (YYYY-MM-DD)"
// @Param        time         formData  string  true   "Time (HH:MM)"
// @Param        location     formData  string  false  "Location"
// @Success      302  "Redirect to / on success, back to /edit/{id} on invalid input"
// @Router       /edit/{id} [post]
func (h *EventHandler) Edit(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
	}
	ctx := c.Request().Context()
	if _, err := h.events.Get(ctx, id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
		}
		return err
	}
	back := fmt.Sprintf("/edit/%d", id)

	in, msg, err := bindEvent(c)
	if err != nil {
		return err
	}
	if msg != "" {
		return flashRedirect(c, domain.FlashDanger, msg, back)
	}

	if _, err := h.events.Update(ctx, id, in); err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
		case errors.Is(err, domain.ErrInvalidDateTimeFormat):
			return flashRedirect(c, domain.FlashDanger, msgInvalidDateTime, back)
		}
		return err
	}

	h.metrics.EventMutation(metrics.OpUpdate)
	return flashRedirect(c, domain.FlashSuccess, msgEventUpdated, "/")
}

// Delete removes an event.
//
// @Summary      Delete event
// @Tags         events
// @Param        id   path  int  true  "Event ID"
// @Success      302  "Redirect to /"
// @Router       /delete/{id} [post]
func (h *EventHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
	}

	if err := h.events.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return flashRedirect(c, domain.FlashDanger, msgEventNotFound, "/")
		}
		return err
	}

	h.metrics.EventMutation(metrics.OpDelete)
	return flashRedirect(c, domain.FlashSuccess, msgEventDeleted, "/")
}

// bindEvent decodes and validates the event form. A non-empty msg means the
// input was rejected and should be flashed back to the user.
func bindEvent(c echo.Context) (in ports.EventInput, msg string, err error) {
	var req eventForm
	if err := c.Bind(&req); err != nil {
		return in, "", echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		var fe *FormError
		if !errors.As(err, &fe) {
			return in, "", err
		}
		if fe.Has("date", "time") {
			return in, msgInvalidDateTime, nil
		}
		return in, capitalize(fe.Error()), nil
	}

	return ports.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
	}, "", nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
