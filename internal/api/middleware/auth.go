package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

const (
	// ContextCookie holds the signed browser context id.
	ContextCookie = "rifa_ctx"

	// Echo context keys.
	BrowserContextKey = "browser_context"
	SessionKey        = "session"
)

// BrowserContextConfig configures the browser context cookie.
type BrowserContextConfig struct {
	Secret string
	Secure bool
	MaxAge time.Duration
}

// BrowserContext reads the signed context cookie and scopes the request
// context to its id. A missing, tampered or expired cookie is replaced by a
// fresh context, which starts anonymous.
func BrowserContext(cfg BrowserContextConfig) echo.MiddlewareFunc {
	key := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(ContextCookie); err == nil {
				id = parseContextToken(ck.Value, key)
			}

			if id == "" {
				id = uuid.NewString()
				signed, err := signContextToken(id, key, cfg.MaxAge)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     ContextCookie,
					Value:    signed,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(cfg.MaxAge.Seconds()),
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithBrowserContext(req.Context(), id)))
			c.Set(BrowserContextKey, id)

			return next(c)
		}
	}
}

func signContextToken(id string, key []byte, maxAge time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  id,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if maxAge > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(maxAge))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// parseContextToken returns the context id of a valid token, or "".
func parseContextToken(raw string, key []byte) string {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return key, nil
	})
	if err != nil || !tkn.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

// SessionResolver resolves the session of the request's browser context.
type SessionResolver interface {
	Initialize(ctx context.Context) domain.AuthState
	Current(ctx context.Context) (*domain.Session, bool)
}

// RequireSession guards private routes. An unresolved context is resolved
// first; anonymous contexts are rejected with ErrUnauthenticated.
func RequireSession(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if sessions.Initialize(ctx) != domain.AuthAuthenticated {
				return domain.ErrUnauthenticated
			}
			sess, ok := sessions.Current(ctx)
			if !ok {
				return domain.ErrUnauthenticated
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session set by RequireSession.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	s, ok := c.Get(SessionKey).(*domain.Session)
	return s, ok && s != nil
}
