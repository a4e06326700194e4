package account

import (
	"context"
	"fmt"

	"github.com/clinicaflow/console/internal/platform/apiclient"
)

// Backend is the authentication and account resource on the clinic REST
// server.
type Backend interface {
	Login(ctx context.Context, c Credentials) (LoginResponse, error)
	Current(ctx context.Context) (Profile, error)
	ChangePassword(ctx context.Context, req PasswordRequest) (string, error)
}

type HTTPBackend struct {
	api *apiclient.Client
}

func NewHTTPBackend(api *apiclient.Client) *HTTPBackend {
	return &HTTPBackend{api: api}
}

func (b *HTTPBackend) Login(ctx context.Context, c Credentials) (LoginResponse, error) {
	var out LoginResponse
	if err := b.api.Post(ctx, "/api/auth/login", c, &out); err != nil {
		return LoginResponse{}, fmt.Errorf("login: %w", err)
	}
	return out, nil
}

func (b *HTTPBackend) Current(ctx context.Context) (Profile, error) {
	var out Profile
	if err := b.api.Get(ctx, "/api/useraccount/current", &out); err != nil {
		return Profile{}, fmt.Errorf("get current account: %w", err)
	}
	return out, nil
}

// ChangePassword returns the server's plain-text confirmation.
func (b *HTTPBackend) ChangePassword(ctx context.Context, req PasswordRequest) (string, error) {
	text, err := b.api.PostText(ctx, "/api/useraccount/change-password", req)
	if err != nil {
		return "", fmt.Errorf("change password: %w", err)
	}
	return text, nil
}
