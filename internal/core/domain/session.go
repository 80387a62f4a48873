package domain

import "context"

const (
	ProfileAdmin = "ADMIN"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// AuthState is the boot state of a browser context's session.
type AuthState string

const (
	AuthUnknown       AuthState = "unknown"
	AuthAuthenticated AuthState = "authenticated"
	AuthAnonymous     AuthState = "anonymous"
)

// Session is the authenticated operator as returned by the backend login.
// Field names match the backend's AuthData payload.
type Session struct {
	UserID          int64  `json:"userId"`
	Login           string `json:"login"`
	Name            string `json:"name"`
	Token           string `json:"token"`
	Profile         string `json:"profile"`
	PasswordChanged bool   `json:"senhaAlterada"`
}

// HasProfile reports whether the session carries one of the given profiles.
func (s *Session) HasProfile(profiles ...string) bool {
	if s == nil {
		return false
	}
	for _, p := range profiles {
		if s.Profile == p {
			return true
		}
	}
	return false
}

// SelectedEmpresa is the company the operator is currently working on.
type SelectedEmpresa struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

type browserContextKey struct{}

// WithBrowserContext returns a copy of ctx scoped to the given browser context id.
func WithBrowserContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, browserContextKey{}, id)
}

// BrowserContextFrom extracts the browser context id, or "" when absent.
func BrowserContextFrom(ctx context.Context) string {
	id, _ := ctx.Value(browserContextKey{}).(string)
	return id
}
