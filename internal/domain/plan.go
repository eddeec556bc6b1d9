package domain

import "strings"

// Feature is one line of a plan's feature list.
type Feature struct {
	Description string `json:"description"`
	Included    bool   `json:"included"`
}

// PricePlan is a billing tier. Prices are decimal strings as served by the backend.
type PricePlan struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	MonthlyPrice         string    `json:"monthly_price"`
	AnnualPrice          string    `json:"annual_price"`
	IncludedSeats        int       `json:"included_seats"`
	AdditionalSeatPrice  string    `json:"additional_seat_price"`
	Features             []Feature `json:"features"`
	IsBestValue          bool      `json:"is_best_value"`
	IsActive             bool      `json:"is_active"`
	StripePriceIDMonthly string    `json:"stripe_price_id_monthly"`
	StripePriceIDAnnual  string    `json:"stripe_price_id_annual"`
	CreatedAt            string    `json:"created_at"`
	UpdatedAt            string    `json:"updated_at"`
}

// PricePlanCreate is the body of POST /price-plans/.
type PricePlanCreate struct {
	Name                 string    `json:"name"`
	MonthlyPrice         string    `json:"monthly_price"`
	AnnualPrice          string    `json:"annual_price"`
	IncludedSeats        int       `json:"included_seats"`
	AdditionalSeatPrice  string    `json:"additional_seat_price"`
	Features             []Feature `json:"features"`
	IsBestValue          bool      `json:"is_best_value"`
	IsActive             bool      `json:"is_active"`
	StripePriceIDMonthly string    `json:"stripe_price_id_monthly,omitempty"`
	StripePriceIDAnnual  string    `json:"stripe_price_id_annual,omitempty"`
}

// PricePlanUpdate is a partial plan update.
type PricePlanUpdate struct {
	Name                 *string    `json:"name,omitempty"`
	MonthlyPrice         *string    `json:"monthly_price,omitempty"`
	AnnualPrice          *string    `json:"annual_price,omitempty"`
	IncludedSeats        *int       `json:"included_seats,omitempty"`
	AdditionalSeatPrice  *string    `json:"additional_seat_price,omitempty"`
	Features             *[]Feature `json:"features,omitempty"`
	IsBestValue          *bool      `json:"is_best_value,omitempty"`
	IsActive             *bool      `json:"is_active,omitempty"`
	StripePriceIDMonthly *string    `json:"stripe_price_id_monthly,omitempty"`
	StripePriceIDAnnual  *string    `json:"stripe_price_id_annual,omitempty"`
}

// IncludedFeatures drops blank descriptions and marks every kept feature as included.
func IncludedFeatures(features []Feature) []Feature {
	out := make([]Feature, 0, len(features))
	for _, f := range features {
		if strings.TrimSpace(f.Description) == "" {
			continue
		}
		out = append(out, Feature{Description: f.Description, Included: true})
	}
	return out
}
