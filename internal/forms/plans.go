package forms

import (
	"strings"

	"github.com/shopspring/decimal"

	"console/internal/domain"
)

// FeatureRow is one editable line of the plan feature list.
type FeatureRow struct {
	Description string `json:"description"`
	Included    bool   `json:"included"`
}

// PlanCreateForm is the "Create Plan" dialog. Prices are decimal strings.
type PlanCreateForm struct {
	Name                 string       `json:"name" validate:"required"`
	MonthlyPrice         string       `json:"monthly_price" validate:"required,decimal"`
	AnnualPrice          string       `json:"annual_price" validate:"required,decimal"`
	IncludedSeats        int          `json:"included_seats" validate:"required,gte=1"`
	AdditionalSeatPrice  string       `json:"additional_seat_price" validate:"omitempty,decimal"`
	Features             []FeatureRow `json:"features" validate:"required,min=1"`
	IsBestValue          bool         `json:"is_best_value"`
	IsActive             *bool        `json:"is_active"`
	StripePriceIDMonthly string       `json:"stripe_price_id_monthly"`
	StripePriceIDAnnual  string       `json:"stripe_price_id_annual"`
}

// Payload validates the form and builds the create request. Blank feature rows
// are dropped; at least one must remain.
func (f PlanCreateForm) Payload() (domain.PricePlanCreate, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.MonthlyPrice = strings.TrimSpace(f.MonthlyPrice)
	f.AnnualPrice = strings.TrimSpace(f.AnnualPrice)
	f.AdditionalSeatPrice = strings.TrimSpace(f.AdditionalSeatPrice)
	if err := Validate(f); err != nil {
		return domain.PricePlanCreate{}, err
	}
	if err := nonNegative(map[string]string{
		"monthly_price":         f.MonthlyPrice,
		"annual_price":          f.AnnualPrice,
		"additional_seat_price": f.AdditionalSeatPrice,
	}); err != nil {
		return domain.PricePlanCreate{}, err
	}
	features := domain.IncludedFeatures(toFeatures(f.Features))
	if len(features) == 0 {
		return domain.PricePlanCreate{}, invalid("features", "features must have at least 1 entries")
	}
	seat := f.AdditionalSeatPrice
	if seat == "" {
		seat = "0"
	}
	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}
	return domain.PricePlanCreate{
		Name:                 f.Name,
		MonthlyPrice:         f.MonthlyPrice,
		AnnualPrice:          f.AnnualPrice,
		IncludedSeats:        f.IncludedSeats,
		AdditionalSeatPrice:  seat,
		Features:             features,
		IsBestValue:          f.IsBestValue,
		IsActive:             active,
		StripePriceIDMonthly: strings.TrimSpace(f.StripePriceIDMonthly),
		StripePriceIDAnnual:  strings.TrimSpace(f.StripePriceIDAnnual),
	}, nil
}

// PlanUpdateForm is the edit dialog. The console submits the whole record, so
// every field is optional.
type PlanUpdateForm struct {
	Name                 *string       `json:"name" validate:"omitempty,min=1"`
	MonthlyPrice         *string       `json:"monthly_price" validate:"omitempty,decimal"`
	AnnualPrice          *string       `json:"annual_price" validate:"omitempty,decimal"`
	IncludedSeats        *int          `json:"included_seats" validate:"omitempty,gte=1"`
	AdditionalSeatPrice  *string       `json:"additional_seat_price" validate:"omitempty,decimal"`
	Features             *[]FeatureRow `json:"features"`
	IsBestValue          *bool         `json:"is_best_value"`
	IsActive             *bool         `json:"is_active"`
	StripePriceIDMonthly *string       `json:"stripe_price_id_monthly"`
	StripePriceIDAnnual  *string       `json:"stripe_price_id_annual"`
}

func (f PlanUpdateForm) Payload() (domain.PricePlanUpdate, error) {
	f.Name = trimmed(f.Name)
	f.MonthlyPrice = trimmed(f.MonthlyPrice)
	f.AnnualPrice = trimmed(f.AnnualPrice)
	f.AdditionalSeatPrice = trimmed(f.AdditionalSeatPrice)
	if err := Validate(f); err != nil {
		return domain.PricePlanUpdate{}, err
	}
	prices := map[string]string{}
	for key, p := range map[string]*string{
		"monthly_price":         f.MonthlyPrice,
		"annual_price":          f.AnnualPrice,
		"additional_seat_price": f.AdditionalSeatPrice,
	} {
		if p != nil {
			prices[key] = *p
		}
	}
	if err := nonNegative(prices); err != nil {
		return domain.PricePlanUpdate{}, err
	}
	out := domain.PricePlanUpdate{
		Name:                 f.Name,
		MonthlyPrice:         f.MonthlyPrice,
		AnnualPrice:          f.AnnualPrice,
		IncludedSeats:        f.IncludedSeats,
		AdditionalSeatPrice:  f.AdditionalSeatPrice,
		IsBestValue:          f.IsBestValue,
		IsActive:             f.IsActive,
		StripePriceIDMonthly: trimmed(f.StripePriceIDMonthly),
		StripePriceIDAnnual:  trimmed(f.StripePriceIDAnnual),
	}
	if f.Features != nil {
		features := domain.IncludedFeatures(toFeatures(*f.Features))
		if len(features) == 0 {
			return domain.PricePlanUpdate{}, invalid("features", "features must have at least 1 entries")
		}
		out.Features = &features
	}
	return out, nil
}

// ToggleActive builds the update that flips a plan's active flag.
func ToggleActive(p domain.PricePlan) domain.PricePlanUpdate {
	next := !p.IsActive
	return domain.PricePlanUpdate{IsActive: &next}
}

func toFeatures(rows []FeatureRow) []domain.Feature {
	out := make([]domain.Feature, len(rows))
	for i, r := range rows {
		out[i] = domain.Feature{Description: r.Description, Included: r.Included}
	}
	return out
}

func nonNegative(prices map[string]string) error {
	for field, p := range prices {
		if p == "" {
			continue
		}
		if decimal.RequireFromString(p).IsNegative() {
			return invalid(field, field+" must be at least 0")
		}
	}
	return nil
}
