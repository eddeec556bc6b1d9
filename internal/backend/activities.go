package backend

import (
	"context"
	"net/http"
	"net/url"

	"console/internal/domain"
)

// MyActivities lists the caller's own activity.
func (c *Client) MyActivities(ctx context.Context, q domain.ActivityQuery) ([]domain.ActivityLog, error) {
	return c.activities(ctx, "/activities/me", q)
}

// RecentActivities lists activity across all accounts, newest first.
func (c *Client) RecentActivities(ctx context.Context, q domain.ActivityQuery) ([]domain.ActivityLog, error) {
	return c.activities(ctx, "/activities/recent", q)
}

func (c *Client) activities(ctx context.Context, path string, q domain.ActivityQuery) ([]domain.ActivityLog, error) {
	params := url.Values{}
	setInt(params, "skip", q.Skip)
	setInt(params, "limit", q.Limit)
	if q.ActivityType != "" {
		params.Set("activity_type", q.ActivityType)
	}
	var out []domain.ActivityLog
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
