package client

import (
	"context"
	"errors"

	"github.com/erazemk/konzola/internal/model"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login exchanges credentials for a backend bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res LoginResult
	if err := c.Post(ctx, "/api/login", body, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &SchemaError{Path: "/api/login", Err: errors.New("missing token")}
	}
	if err := res.User.Validate(); err != nil {
		return nil, &SchemaError{Path: "/api/login", Err: err}
	}
	return &res, nil
}

// Logout invalidates the bearer token carried by ctx.
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/api/logout", nil, nil)
}

// Statuses returns every status known to the backend.
func (c *Client) Statuses(ctx context.Context) ([]model.Status, error) {
	var statuses []model.Status
	if err := c.Get(ctx, "/api/statuses", &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
