package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/parixitpatel/EventmanagerNew/docs"
	"github.com/parixitpatel/EventmanagerNew/internal/api/handler"
	"github.com/parixitpatel/EventmanagerNew/internal/api/metrics"
	"github.com/parixitpatel/EventmanagerNew/internal/api/middleware"
	"github.com/parixitpatel/EventmanagerNew/internal/api/view"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
	"github.com/parixitpatel/EventmanagerNew/internal/infrastructure/http/handlers"
)

const loginPath = "/login"

// Deps is everything the router needs from main.
type Deps struct {
	Auth     ports.AuthService
	Events   ports.EventService
	Sessions ports.SessionStore

	SessionSecret []byte
	SessionCookie string
	SessionTTL    time.Duration
	SecureCookie  bool

	// Readiness lists the dependencies pinged by /health/ready.
	Readiness map[string]handlers.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Logger       zerolog.Logger
	Swagger      bool
	CalendarHost string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.CalendarHost == "" {
		d.CalendarHost = "eventmanager"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = view.MustRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "eventmanager",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.Session(middleware.SessionConfig{
		Store:      d.Sessions,
		Secret:     d.SessionSecret,
		CookieName: d.SessionCookie,
		TTL:        d.SessionTTL,
		Secure:     d.SecureCookie,
		Logger:     d.Logger,
	}))

	// --- Dependencies ---
	m := metrics.New(d.Registerer)
	authHandler := handler.NewAuthHandler(d.Auth, m, d.Logger)
	eventHandler := handler.NewEventHandler(d.Events, m)
	calendarHandler := handler.NewCalendarHandler(d.Events, d.CalendarHost)
	requireSession := middleware.RequireSession(loginPath)

	// --- Auth routes ---
	e.GET("/signup", authHandler.SignupForm)
	e.POST("/signup", authHandler.Signup)
	e.GET(loginPath, authHandler.LoginForm)
	e.POST(loginPath, authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Event routes (session required) ---
	e.GET("/", eventHandler.Index, requireSession)
	e.GET("/add", eventHandler.AddForm, requireSession)
	e.POST("/add", eventHandler.Add, requireSession)
	e.GET("/edit/:id", eventHandler.EditForm, requireSession)
	e.POST("/edit/:id", eventHandler.Edit, requireSession)
	e.POST("/delete/:id", eventHandler.Delete, requireSession)
	e.GET("/events.ics", calendarHandler.Export, requireSession)

	// --- Assets and docs ---
	e.StaticFS("/static", view.StaticFS())
	if d.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
