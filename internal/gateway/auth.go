package gateway

import (
	"context"
	"net/http"

	"refugee-portal/internal/domain"
)

func (c *Client) SignUp(ctx context.Context, input domain.SignUpInput, serviceKey string) (*domain.AuthResult, error) {
	var out domain.AuthResult
	cl := call{method: http.MethodPost, path: "/auth/signup", body: input, out: &out}
	if serviceKey != "" {
		cl.headers = map[string]string{ServiceKeyHeader: serviceKey}
	}
	if err := c.do(ctx, cl); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignIn(ctx context.Context, input domain.SignInInput) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/signin", body: input, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	var out domain.TokenPair
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/refresh", body: body, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignOut(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh_token": refreshToken}
	return c.do(ctx, call{method: http.MethodPost, path: "/auth/signout", body: body})
}

func (c *Client) Session(ctx context.Context) (*domain.SessionInfo, error) {
	var out domain.SessionInfo
	if err := c.do(ctx, call{method: http.MethodGet, path: "/auth/session", out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Landing(ctx context.Context) (string, error) {
	var out struct {
		Route string `json:"route"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/auth/landing", out: &out}); err != nil {
		return "", err
	}
	return out.Route, nil
}
