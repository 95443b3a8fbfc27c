package api

import (
	"context"

	"github.com/thibaultdory/foyer/internal/model"
)

// Me returns the currently authenticated user, or nil when the session is
// anonymous (the backend answers null rather than 401).
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user *model.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout terminates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// LoginURL is the full-page redirect target that starts the Google OAuth
// flow. The browser must navigate there; it is not an XHR endpoint.
func (c *Client) LoginURL() string {
	return c.baseURL + "/api/auth/google"
}

// Family returns all members of the family roster.
func (c *Client) Family(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/users/family", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
