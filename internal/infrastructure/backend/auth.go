package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login calls POST /login.
func (c *Client) Login(ctx context.Context, login, passwordHash string) (*domain.Session, error) {
	s, err := expect[*domain.Session](ctx, c, request{
		method: http.MethodPost,
		path:   "/login",
		body:   loginRequest{Login: login, Password: passwordHash},
		public: true,
	})
	if err != nil {
		return nil, err
	}
	if s == nil || s.Token == "" {
		return nil, &domain.LogicalError{Endpoint: "/login", Message: "login response without token"}
	}
	return s, nil
}

// ValidateToken calls GET /validatetoken. A nil error means the token is accepted.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	_, err := expect[struct{}](ctx, c, request{
		method: http.MethodGet,
		path:   "/validatetoken",
		query:  url.Values{"token": {token}},
		public: true,
	})
	return err
}
