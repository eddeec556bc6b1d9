package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"console/internal/domain"
)

const invalidCredentials = "Invalid credentials"

// Login exchanges email and password for a bearer token. It bypasses the
// authenticated path: a 401 here is a failed login and clears nothing.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	c.setRequestID(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Detail: parseDetail(raw, invalidCredentials)}
	}
	var out domain.LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("backend: decode response: %w", err)
	}
	if out.AccessToken == "" {
		return nil, &APIError{Status: resp.StatusCode, Detail: invalidCredentials}
	}
	c.logger.Debug().Str("token_type", out.TokenType).Msg("backend login succeeded")
	return &out, nil
}

// Profile returns the signed-in account.
func (c *Client) Profile(ctx context.Context) (*domain.UserWithSubscription, error) {
	var out domain.UserWithSubscription
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial update to the signed-in account.
func (c *Client) UpdateProfile(ctx context.Context, in domain.UserAdminUpdate) (*domain.UserWithSubscription, error) {
	var out domain.UserWithSubscription
	if err := c.do(ctx, http.MethodPut, "/users/me", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the signed-in account's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := domain.PasswordChange{CurrentPassword: currentPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPut, "/users/me/password", nil, body, nil)
}

// UserByID fetches a single account.
func (c *Client) UserByID(ctx context.Context, id int64) (*domain.UserWithSubscription, error) {
	var out domain.UserWithSubscription
	if err := c.do(ctx, http.MethodGet, idPath("/users", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrialStatus reports the caller's trial state.
func (c *Client) TrialStatus(ctx context.Context) (*domain.TrialStatus, error) {
	var out domain.TrialStatus
	if err := c.do(ctx, http.MethodGet, "/users/trial-status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
