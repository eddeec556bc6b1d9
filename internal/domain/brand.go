package domain

// Default brand theme applied by the creation form.
const (
	DefaultPrimaryColor   = "#3b82f6"
	DefaultSecondaryColor = "#1e40af"
	DefaultStorageLimitGB = 1.0
	DefaultMaxAccounts    = 5
)

// BrandSettings is a white-label configuration served under its own domain.
type BrandSettings struct {
	ID                   int64    `json:"id"`
	BrandName            string   `json:"brand_name"`
	Domain               string   `json:"domain"`
	PrimaryColor         string   `json:"primary_color"`
	SecondaryColor       string   `json:"secondary_color"`
	LogoURL              string   `json:"logo_url"`
	FaviconURL           string   `json:"favicon_url"`
	IsActive             bool     `json:"is_active"`
	StorageLimitGB       float64  `json:"storage_limit_gb"`
	MaxAccounts          int      `json:"max_accounts"`
	SubscriptionInterval string   `json:"subscription_interval,omitempty"`
	PriceAmount          *float64 `json:"price_amount,omitempty"`
	StripePriceID        string   `json:"stripe_price_id,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

// BrandSettingsCreate is the body of POST /settings/brands/.
type BrandSettingsCreate struct {
	BrandName            string   `json:"brand_name"`
	Domain               string   `json:"domain"`
	PrimaryColor         string   `json:"primary_color"`
	SecondaryColor       string   `json:"secondary_color"`
	LogoURL              string   `json:"logo_url"`
	FaviconURL           string   `json:"favicon_url"`
	IsActive             bool     `json:"is_active"`
	StorageLimitGB       float64  `json:"storage_limit_gb"`
	MaxAccounts          int      `json:"max_accounts"`
	SubscriptionInterval string   `json:"subscription_interval,omitempty"`
	PriceAmount          *float64 `json:"price_amount,omitempty"`
}

// BrandSettingsUpdate is a partial brand update.
type BrandSettingsUpdate struct {
	BrandName            *string  `json:"brand_name,omitempty"`
	Domain               *string  `json:"domain,omitempty"`
	PrimaryColor         *string  `json:"primary_color,omitempty"`
	SecondaryColor       *string  `json:"secondary_color,omitempty"`
	LogoURL              *string  `json:"logo_url,omitempty"`
	FaviconURL           *string  `json:"favicon_url,omitempty"`
	IsActive             *bool    `json:"is_active,omitempty"`
	StorageLimitGB       *float64 `json:"storage_limit_gb,omitempty"`
	MaxAccounts          *int     `json:"max_accounts,omitempty"`
	SubscriptionInterval *string  `json:"subscription_interval,omitempty"`
	PriceAmount          *float64 `json:"price_amount,omitempty"`
}
