package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"console/internal/domain"
)

// ListPlans returns price plans. active_only is always sent.
func (c *Client) ListPlans(ctx context.Context, activeOnly bool) ([]domain.PricePlan, error) {
	params := url.Values{}
	params.Set("active_only", strconv.FormatBool(activeOnly))
	var out []domain.PricePlan
	if err := c.do(ctx, http.MethodGet, "/price-plans", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlanByID fetches a single plan.
func (c *Client) PlanByID(ctx context.Context, id int64) (*domain.PricePlan, error) {
	var out domain.PricePlan
	if err := c.do(ctx, http.MethodGet, idPath("/price-plans", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlan creates a plan. Blank features are dropped and the rest marked included.
func (c *Client) CreatePlan(ctx context.Context, in domain.PricePlanCreate) (*domain.PricePlan, error) {
	in.MonthlyPrice = strings.TrimSpace(in.MonthlyPrice)
	in.AnnualPrice = strings.TrimSpace(in.AnnualPrice)
	in.AdditionalSeatPrice = strings.TrimSpace(in.AdditionalSeatPrice)
	in.Features = domain.IncludedFeatures(in.Features)
	var out domain.PricePlan
	if err := c.do(ctx, http.MethodPost, "/price-plans/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlan applies a partial update to a plan.
func (c *Client) UpdatePlan(ctx context.Context, id int64, in domain.PricePlanUpdate) (*domain.PricePlan, error) {
	if in.Features != nil {
		kept := domain.IncludedFeatures(*in.Features)
		in.Features = &kept
	}
	var out domain.PricePlan
	if err := c.do(ctx, http.MethodPut, idPath("/price-plans", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePlan removes a plan.
func (c *Client) DeletePlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/price-plans", id), nil, nil, nil)
}
