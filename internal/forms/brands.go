package forms

import (
	"strings"

	"console/internal/domain"
)

// BrandCreateForm is the white-label creation dialog.
type BrandCreateForm struct {
	BrandName            string   `json:"brand_name" validate:"required"`
	Domain               string   `json:"domain" validate:"required,hostname_rfc1123"`
	PrimaryColor         string   `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor       string   `json:"secondary_color" validate:"omitempty,hexcolor"`
	LogoURL              string   `json:"logo_url" validate:"omitempty,url"`
	FaviconURL           string   `json:"favicon_url" validate:"omitempty,url"`
	IsActive             *bool    `json:"is_active"`
	StorageLimitGB       *float64 `json:"storage_limit_gb" validate:"omitempty,gt=0"`
	MaxAccounts          *int     `json:"max_accounts" validate:"omitempty,gte=1"`
	SubscriptionInterval string   `json:"subscription_interval" validate:"omitempty,oneof=monthly yearly"`
	PriceAmount          *float64 `json:"price_amount" validate:"omitempty,gte=0"`
}

// Payload validates the form and fills the default theme and limits.
func (f BrandCreateForm) Payload() (domain.BrandSettingsCreate, error) {
	f.BrandName = strings.TrimSpace(f.BrandName)
	f.Domain = strings.ToLower(strings.TrimSpace(f.Domain))
	f.PrimaryColor = strings.TrimSpace(f.PrimaryColor)
	f.SecondaryColor = strings.TrimSpace(f.SecondaryColor)
	f.LogoURL = strings.TrimSpace(f.LogoURL)
	f.FaviconURL = strings.TrimSpace(f.FaviconURL)
	f.SubscriptionInterval = strings.ToLower(strings.TrimSpace(f.SubscriptionInterval))
	if err := Validate(f); err != nil {
		return domain.BrandSettingsCreate{}, err
	}
	out := domain.BrandSettingsCreate{
		BrandName:            f.BrandName,
		Domain:               f.Domain,
		PrimaryColor:         orDefault(f.PrimaryColor, domain.DefaultPrimaryColor),
		SecondaryColor:       orDefault(f.SecondaryColor, domain.DefaultSecondaryColor),
		LogoURL:              f.LogoURL,
		FaviconURL:           f.FaviconURL,
		IsActive:             true,
		StorageLimitGB:       domain.DefaultStorageLimitGB,
		MaxAccounts:          domain.DefaultMaxAccounts,
		SubscriptionInterval: f.SubscriptionInterval,
		PriceAmount:          f.PriceAmount,
	}
	if f.IsActive != nil {
		out.IsActive = *f.IsActive
	}
	if f.StorageLimitGB != nil {
		out.StorageLimitGB = *f.StorageLimitGB
	}
	if f.MaxAccounts != nil {
		out.MaxAccounts = *f.MaxAccounts
	}
	return out, nil
}

// BrandUpdateForm edits a brand; omitted fields are left unchanged.
type BrandUpdateForm struct {
	BrandName            *string  `json:"brand_name" validate:"omitempty,min=1"`
	Domain               *string  `json:"domain" validate:"omitempty,hostname_rfc1123"`
	PrimaryColor         *string  `json:"primary_color" validate:"omitempty,hexcolor"`
	SecondaryColor       *string  `json:"secondary_color" validate:"omitempty,hexcolor"`
	LogoURL              *string  `json:"logo_url" validate:"omitempty,url"`
	FaviconURL           *string  `json:"favicon_url" validate:"omitempty,url"`
	IsActive             *bool    `json:"is_active"`
	StorageLimitGB       *float64 `json:"storage_limit_gb" validate:"omitempty,gt=0"`
	MaxAccounts          *int     `json:"max_accounts" validate:"omitempty,gte=1"`
	SubscriptionInterval *string  `json:"subscription_interval" validate:"omitempty,oneof=monthly yearly"`
	PriceAmount          *float64 `json:"price_amount" validate:"omitempty,gte=0"`
}

func (f BrandUpdateForm) Payload() (domain.BrandSettingsUpdate, error) {
	f.BrandName = trimmed(f.BrandName)
	f.PrimaryColor = trimmed(f.PrimaryColor)
	f.SecondaryColor = trimmed(f.SecondaryColor)
	f.LogoURL = trimmed(f.LogoURL)
	f.FaviconURL = trimmed(f.FaviconURL)
	if f.Domain != nil {
		d := strings.ToLower(strings.TrimSpace(*f.Domain))
		f.Domain = &d
	}
	if f.SubscriptionInterval != nil {
		i := strings.ToLower(strings.TrimSpace(*f.SubscriptionInterval))
		f.SubscriptionInterval = &i
	}
	if err := Validate(f); err != nil {
		return domain.BrandSettingsUpdate{}, err
	}
	out := domain.BrandSettingsUpdate{
		BrandName:            f.BrandName,
		Domain:               f.Domain,
		PrimaryColor:         f.PrimaryColor,
		SecondaryColor:       f.SecondaryColor,
		LogoURL:              f.LogoURL,
		FaviconURL:           f.FaviconURL,
		IsActive:             f.IsActive,
		StorageLimitGB:       f.StorageLimitGB,
		MaxAccounts:          f.MaxAccounts,
		SubscriptionInterval: f.SubscriptionInterval,
		PriceAmount:          f.PriceAmount,
	}
	if out == (domain.BrandSettingsUpdate{}) {
		return out, invalid("body", "at least one field must be provided")
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
