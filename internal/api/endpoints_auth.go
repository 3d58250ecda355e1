package api

import (
	"context"
	"net/http"

	"damagesnap/internal/models"
)

// Register creates an account.
func (c *Client) Register(ctx context.Context, in models.UserCreate) Result[models.User] {
	return do[models.User](ctx, c, call{op: "auth.register", method: http.MethodPost, endpoint: "/api/auth/register", body: jsonBody{in}})
}

// Login exchanges credentials for an access token. It does not store the
// token; see forms.LoginForm.
func (c *Client) Login(ctx context.Context, in models.UserLogin) Result[models.Token] {
	return do[models.Token](ctx, c, call{op: "auth.login", method: http.MethodPost, endpoint: "/api/auth/login", body: jsonBody{in}})
}

// CurrentUser returns the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) Result[models.User] {
	return do[models.User](ctx, c, call{op: "auth.me", method: http.MethodGet, endpoint: "/api/auth/me", auth: true})
}
