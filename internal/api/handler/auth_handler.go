package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parixitpatel/EventmanagerNew/internal/api/metrics"
	"github.com/parixitpatel/EventmanagerNew/internal/api/middleware"
	"github.com/parixitpatel/EventmanagerNew/internal/api/view"
	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
)

// User-facing messages.
const (
	msgCredentialsRequired = "Username is required"
	msgUsernameTaken       = "Username already exists. Please choose another."
	msgPasswordTooLong     = "Password must be at most 72 bytes"
	msgSignedUp            = "Account created successfully! Please login."
	msgInvalidCredentials  = "Invalid username or password"
	msgLoggedIn            = "Logged in successfully"
	msgLoggedOut           = "Logged out successfully"
)

type AuthHandler struct {
	authService ports.AuthService
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, m *metrics.Metrics, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: m, log: log}
}

// SignupForm renders the registration page.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /signup [get]
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return render(c, http.StatusOK, view.PageSignup, "Sign Up", nil)
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  false "Password"
// @Success      302  "Redirect to /login on success, back to /signup on failure"
// @Failure      500  {string}  string  "HTML error page"
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if err := c.Validate(&req); err != nil {
		h.metrics.AuthAttempt(metrics.ActionSignup, metrics.ResultRejected)
		return flashRedirect(c, domain.FlashDanger, msgCredentialsRequired, "/signup")
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			msg = msgUsernameTaken
		case errors.Is(err, domain.ErrInvalidCredentials):
			msg = msgCredentialsRequired
		case errors.Is(err, domain.ErrPasswordTooLong):
			msg = msgPasswordTooLong
		default:
			h.metrics.AuthAttempt(metrics.ActionSignup, metrics.ResultError)
			return err
		}
		h.metrics.AuthAttempt(metrics.ActionSignup, metrics.ResultRejected)
		return flashRedirect(c, domain.FlashDanger, msg, "/signup")
	}

	h.metrics.AuthAttempt(metrics.ActionSignup, metrics.ResultSuccess)
	h.log.Debug().Int64("user_id", user.ID).Msg("signup")
	return flashRedirect(c, domain.FlashSuccess, msgSignedUp, "/login")
}

// LoginForm renders the login page.
//
// @Summary      Login page
// @Tags         auth
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       /login [get]
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return render(c, http.StatusOK, view.PageLogin, "Login", nil)
}

// Login authenticates a user and binds them to the session.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  false "Password"
// @Success      302  "Redirect to / with the session cookie set"
// @Failure      200  {string}  string  "Login page with an error message"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.AuthAttempt(metrics.ActionLogin, metrics.ResultError)
			return err
		}
		h.metrics.AuthAttempt(metrics.ActionLogin, metrics.ResultRejected)
		middleware.CurrentSession(c).AddFlash(domain.FlashDanger, msgInvalidCredentials)
		return render(c, http.StatusOK, view.PageLogin, "Login", req.Username)
	}

	middleware.CurrentSession(c).SignIn(user.ID)
	h.metrics.AuthAttempt(metrics.ActionLogin, metrics.ResultSuccess)
	return flashRedirect(c, domain.FlashSuccess, msgLoggedIn, "/")
}

// Logout clears the signed-in user from the session.
//
// @Summary      Logout
// @Tags         auth
// @Success      302  "Redirect to /login"
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.CurrentSession(c).SignOut()
	h.metrics.AuthAttempt(metrics.ActionLogout, metrics.ResultSuccess)
	return flashRedirect(c, domain.FlashSuccess, msgLoggedOut, "/login")
}
