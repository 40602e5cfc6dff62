package handler

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/labstack/echo/v4"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
)

const (
	icsFloatingLayout = "20060102T150405"
	defaultDuration   = time.Hour

	// calendarName is the X-WR-CALNAME of the exported feed.
	calendarName = "Event Manager"
)

// CalendarHandler exports the stored events as an iCalendar feed.
type CalendarHandler struct {
	events ports.EventService
	host   string
}

// NewCalendarHandler builds a CalendarHandler. host is used to make event
// UIDs globally unique.
func NewCalendarHandler(events ports.EventService, host string) *CalendarHandler {
	return &CalendarHandler{events: events, host: host}
}

// Export writes all events as text/calendar.
//
// @Summary      iCalendar export
// @Tags         events
// @Produce      text/calendar
// @Success      200  {string}  string  "VCALENDAR document"
// @Failure      302  "Redirect to /login without a session"
// @Router       /events.ics [get]
func (h *CalendarHandler) Export(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return err
	}

	body := buildCalendar(events, h.host, time.Now().UTC())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="events.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// buildCalendar renders events with floating local times: the stored date
// and time carry no zone, so none is invented here.
func buildCalendar(events []domain.Event, host string, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//EventManager//Events//EN")
	cal.SetName(calendarName)

	for _, e := range events {
		start := e.StartsAt(time.UTC)
		ev := cal.AddEvent(fmt.Sprintf("event-%d@%s", e.ID, host))
		ev.SetDtStampTime(stamp)
		ev.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsFloatingLayout))
		ev.SetProperty(ics.ComponentPropertyDtEnd, start.Add(defaultDuration).Format(icsFloatingLayout))
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
	}
	return cal.Serialize()
}
