package backend

import (
	"context"
	"net/http"

	"console/internal/domain"
)

// ListBrands returns every white-label configuration.
func (c *Client) ListBrands(ctx context.Context) ([]domain.BrandSettings, error) {
	var out []domain.BrandSettings
	if err := c.do(ctx, http.MethodGet, "/settings/brands/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BrandCount is the number of configured brands.
func (c *Client) BrandCount(ctx context.Context) (int, error) {
	brands, err := c.ListBrands(ctx)
	if err != nil {
		return 0, err
	}
	return len(brands), nil
}

// BrandByID fetches a single brand.
func (c *Client) BrandByID(ctx context.Context, id int64) (*domain.BrandSettings, error) {
	var out domain.BrandSettings
	if err := c.do(ctx, http.MethodGet, idPath("/settings/brands", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBrand creates a brand.
func (c *Client) CreateBrand(ctx context.Context, in domain.BrandSettingsCreate) (*domain.BrandSettings, error) {
	var out domain.BrandSettings
	if err := c.do(ctx, http.MethodPost, "/settings/brands/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBrand applies a partial update to a brand.
func (c *Client) UpdateBrand(ctx context.Context, id int64, in domain.BrandSettingsUpdate) (*domain.BrandSettings, error) {
	var out domain.BrandSettings
	if err := c.do(ctx, http.MethodPut, idPath("/settings/brands", id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBrand removes a brand.
func (c *Client) DeleteBrand(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/settings/brands", id), nil, nil, nil)
}
