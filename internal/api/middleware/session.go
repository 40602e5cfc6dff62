package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parixitpatel/EventmanagerNew/internal/core/domain"
	"github.com/parixitpatel/EventmanagerNew/internal/core/ports"
)

const sessionContextKey = "session"

// SessionConfig wires the session middleware.
type SessionConfig struct {
	Store      ports.SessionStore
	Secret     []byte
	CookieName string
	TTL        time.Duration
	Secure     bool
	Logger     zerolog.Logger
	// NewID generates session ids. Defaults to uuid.NewString.
	NewID func() string
}

// Session loads the server-side session named by the cookie token, or starts
// an anonymous one, and exposes it through CurrentSession. A modified session
// is saved and the cookie rewritten right before the response is committed.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			sess, err := loadSession(c, cfg)
			if err != nil {
				return err
			}
			c.Set(sessionContextKey, sess)

			c.Response().Before(func() {
				if !sess.Modified() {
					return
				}
				if sess.NeedsRenewal() {
					if err := cfg.Store.Delete(ctx, sess.ID); err != nil {
						cfg.Logger.Warn().Err(err).Msg("session: drop old id")
					}
					sess.Renew(cfg.NewID())
				}
				if err := cfg.Store.Save(ctx, sess); err != nil {
					cfg.Logger.Error().Err(err).Str("path", c.Path()).Msg("session: save")
					return
				}
				token, err := signSessionToken(cfg.Secret, sess.ID, cfg.TTL)
				if err != nil {
					cfg.Logger.Error().Err(err).Msg("session: sign cookie")
					return
				}
				c.SetCookie(&http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					Expires:  time.Now().Add(cfg.TTL),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			})

			return next(c)
		}
	}
}

func loadSession(c echo.Context, cfg SessionConfig) (*domain.Session, error) {
	cookie, err := c.Cookie(cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return domain.NewSession(cfg.NewID()), nil
	}

	id, err := parseSessionToken(cfg.Secret, cookie.Value)
	if err != nil {
		// Tampered, expired or signed with an old secret: start over.
		return domain.NewSession(cfg.NewID()), nil
	}

	sess, err := cfg.Store.Load(c.Request().Context(), id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewSession(cfg.NewID()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// CurrentSession returns the session attached by Session. It never returns
// nil: handlers mounted without the middleware get a throwaway session.
func CurrentSession(c echo.Context) *domain.Session {
	if sess, ok := c.Get(sessionContextKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	sess := domain.NewSession("")
	c.Set(sessionContextKey, sess)
	return sess
}

func signSessionToken(secret []byte, id string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

func parseSessionToken(secret []byte, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid session token")
	}
	if claims.ID == "" {
		return "", errors.New("session token without id")
	}
	return claims.ID, nil
}
