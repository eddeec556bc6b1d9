package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"console/internal/domain"
)

// ListUsers returns one page of accounts.
func (c *Client) ListUsers(ctx context.Context, q domain.UserQuery) ([]domain.UserWithSubscription, error) {
	params := url.Values{}
	setInt(params, "skip", q.Skip)
	setInt(params, "limit", q.Limit)
	var out []domain.UserWithSubscription
	if err := c.do(ctx, http.MethodGet, "/users", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, in domain.UserAdminCreate) (*domain.UserWithSubscription, error) {
	var out domain.UserWithSubscription
	if err := c.do(ctx, http.MethodPost, "/users", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to an account.
func (c *Client) UpdateUser(ctx context.Context, id int64, in domain.UserAdminUpdate) (*domain.UserWithSubscription, error) {
	var out domain.UserWithSubscription
	if err := c.do(ctx, http.MethodPut, idPath("/users", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/users", id), nil, nil, nil)
}

func setInt(params url.Values, key string, v *int) {
	if v != nil {
		params.Set(key, strconv.Itoa(*v))
	}
}
