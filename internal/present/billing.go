package present

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"console/internal/domain"
	"console/internal/listing"
)

// Billing intervals offered by the pricing toggle.
const (
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// YearlyToggleLabel is the caption of the annual billing option.
const YearlyToggleLabel = "Pay Annually (SAVE 25%)"

// ParseInterval normalises the toggle value; anything but yearly is monthly.
func ParseInterval(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), IntervalYearly) {
		return IntervalYearly
	}
	return IntervalMonthly
}

// IntervalOption is one button of the billing toggle.
type IntervalOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// IntervalToggle lists the billing options with the current one selected.
func IntervalToggle(current string) []IntervalOption {
	current = ParseInterval(current)
	return []IntervalOption{
		{Value: IntervalMonthly, Label: "Monthly", Selected: current == IntervalMonthly},
		{Value: IntervalYearly, Label: YearlyToggleLabel, Selected: current == IntervalYearly},
	}
}

// PlanCard is the customer-facing summary of an active plan.
type PlanCard struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Unit        string   `json:"unit"`
	PriceLabel  string   `json:"price_label"`
	SeatsLabel  string   `json:"seats_label"`
	ExtraSeats  string   `json:"extra_seats_label"`
	Features    []string `json:"features"`
	IsBestValue bool     `json:"is_best_value"`
}

// PlanCards builds cards for the active plans, cheapest monthly price first.
func PlanCards(plans []domain.PricePlan, interval string) []PlanCard {
	interval = ParseInterval(interval)
	active := make([]domain.PricePlan, 0, len(plans))
	for _, p := range plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	active = listing.SortBy(active, func(a, b domain.PricePlan) bool {
		return price(a.MonthlyPrice).LessThan(price(b.MonthlyPrice))
	})

	cards := make([]PlanCard, 0, len(active))
	for _, p := range active {
		amount, unit := p.MonthlyPrice, "month"
		if interval == IntervalYearly {
			amount, unit = p.AnnualPrice, "year"
		}
		seats := "seats"
		if p.IncludedSeats == 1 {
			seats = "seat"
		}
		features := make([]string, 0, len(p.Features))
		for _, f := range p.Features {
			features = append(features, f.Description)
		}
		cards = append(cards, PlanCard{
			ID:          p.ID,
			Name:        Title(p.Name),
			Price:       amount,
			Unit:        unit,
			PriceLabel:  fmt.Sprintf("$%s/%s", amount, unit),
			SeatsLabel:  fmt.Sprintf("%d %s included", p.IncludedSeats, seats),
			ExtraSeats:  fmt.Sprintf("add more seats at $%s/user/month", p.AdditionalSeatPrice),
			Features:    features,
			IsBestValue: p.IsBestValue,
		})
	}
	return cards
}

// BrandPriceLabel renders "$<amount>/<interval>", or "" when the brand has no price.
func BrandPriceLabel(b domain.BrandSettings) string {
	if b.PriceAmount == nil {
		return ""
	}
	amount := decimal.NewFromFloat(*b.PriceAmount).StringFixed(2)
	if b.SubscriptionInterval == "" {
		return "$" + amount
	}
	return fmt.Sprintf("$%s/%s", amount, b.SubscriptionInterval)
}

// TableOrder sorts plans for the management table: active plans first, then
// by monthly price.
func TableOrder(plans []domain.PricePlan) []domain.PricePlan {
	return listing.SortBy(plans, func(a, b domain.PricePlan) bool {
		if a.IsActive != b.IsActive {
			return a.IsActive
		}
		return price(a.MonthlyPrice).LessThan(price(b.MonthlyPrice))
	})
}

// price parses a decimal string. Unparseable prices sort as zero.
func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
