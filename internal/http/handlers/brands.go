package handlers

import (
	"net/http"

	"console/internal/domain"
	"console/internal/export"
	"console/internal/forms"
	"console/internal/present"
)

type brandRow struct {
	domain.BrandSettings
	Status     present.Badge `json:"status"`
	PriceLabel string        `json:"price_label,omitempty"`
}

type brandsView struct {
	Items    []brandRow                 `json:"items"`
	Defaults domain.BrandSettingsCreate `json:"defaults"`
}

var brandDefaults = domain.BrandSettingsCreate{
	PrimaryColor:   domain.DefaultPrimaryColor,
	SecondaryColor: domain.DefaultSecondaryColor,
	IsActive:       true,
	StorageLimitGB: domain.DefaultStorageLimitGB,
	MaxAccounts:    domain.DefaultMaxAccounts,
}

func (a *App) loadBrands(w http.ResponseWriter, r *http.Request) (brandsView, []domain.BrandSettings, error) {
	brands, err := a.client(w, r).ListBrands(r.Context())
	if err != nil {
		return brandsView{}, nil, err
	}
	rows := make([]brandRow, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, brandRow{BrandSettings: b, Status: present.StatusBadge(b.IsActive), PriceLabel: present.BrandPriceLabel(b)})
	}
	return brandsView{Items: rows, Defaults: brandDefaults}, brands, nil
}

func (a *App) Brands(w http.ResponseWriter, r *http.Request) {
	view, _, err := a.loadBrands(w, r)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch brands")
		return
	}
	a.json(w, http.StatusOK, view)
}

func (a *App) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var form forms.BrandCreateForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to create brand")
		return
	}
	created, err := a.client(w, r).CreateBrand(r.Context(), in)
	if err != nil {
		a.fail(w, r, err, "Failed to create brand")
		return
	}
	a.log(r).Info().Int64("brand_id", created.ID).Str("domain", created.Domain).Msg("brand created")
	a.respondBrands(w, r, http.StatusCreated, created)
}

func (a *App) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	var form forms.BrandUpdateForm
	if !a.decode(w, r, &form) {
		return
	}
	in, err := form.Payload()
	if err != nil {
		a.fail(w, r, err, "Failed to update brand")
		return
	}
	updated, err := a.client(w, r).UpdateBrand(r.Context(), id, in)
	if err != nil {
		a.fail(w, r, err, "Failed to update brand")
		return
	}
	a.respondBrands(w, r, http.StatusOK, updated)
}

func (a *App) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r)
	if !ok {
		return
	}
	if err := a.client(w, r).DeleteBrand(r.Context(), id); err != nil {
		a.fail(w, r, err, "Failed to delete brand")
		return
	}
	a.log(r).Info().Int64("brand_id", id).Msg("brand deleted")
	a.respondBrands(w, r, http.StatusOK, nil)
}

func (a *App) respondBrands(w http.ResponseWriter, r *http.Request, status int, item *domain.BrandSettings) {
	view, _, err := a.loadBrands(w, r)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch brands")
		return
	}
	out := mutationView{List: view}
	if item != nil {
		out.Item = item
	}
	a.json(w, status, out)
}

func (a *App) ExportBrands(w http.ResponseWriter, r *http.Request) {
	_, brands, err := a.loadBrands(w, r)
	if err != nil {
		a.fail(w, r, err, "Failed to fetch brands")
		return
	}
	data, err := export.Brands(brands)
	if err != nil {
		a.log(r).Error().Err(err).Msg("render brands csv")
		a.error(w, http.StatusInternalServerError, "internal", "Failed to export brands")
		return
	}
	a.download(w, "text/csv", export.Filename("brands", a.now()), data)
}
