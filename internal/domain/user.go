package domain

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleAdmin     UserRole = "admin"
	UserRoleModerator UserRole = "moderator"
)

// UserProfile is the account record returned by the backend.
type UserProfile struct {
	ID                 int64    `json:"id"`
	Email              string   `json:"email"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	Role               UserRole `json:"role"`
	StorageLimitBytes  int64    `json:"storage_limit_bytes"`
	MaxUsers           int      `json:"max_users"`
	CustomMonthlyPrice *float64 `json:"custom_monthly_price,omitempty"`
	CustomAnnualPrice  *float64 `json:"custom_annual_price,omitempty"`
}

// FullName joins first and last name, trimming when either is empty.
func (u UserProfile) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin reports whether the account carries the admin role.
func (u UserProfile) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// UserSubscription summarises the billing state attached to a user.
type UserSubscription struct {
	PlanType         string `json:"plan_type"`
	BillingInterval  string `json:"billing_interval"`
	Status           string `json:"status"`
	StripeCustomerID string `json:"stripe_customer_id,omitempty"`
}

// UserWithSubscription is the richer user payload served by list and detail endpoints.
type UserWithSubscription struct {
	UserProfile
	Subscription     *UserSubscription `json:"subscription,omitempty"`
	IsActive         *bool             `json:"is_active,omitempty"`
	StorageUsedBytes *int64            `json:"storage_used_bytes,omitempty"`
	CurrentUsers     *int              `json:"current_users,omitempty"`
	CreatedAt        string            `json:"created_at,omitempty"`
	UpdatedAt        string            `json:"updated_at,omitempty"`
	FiniiteAPIKey    string            `json:"finiite_api_key,omitempty"`
}

// UserCreate is the self-service registration payload.
type UserCreate struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// UserAdminFields are the account limits only an administrator may set.
type UserAdminFields struct {
	Role               *UserRole `json:"role,omitempty"`
	StorageLimitBytes  *int64    `json:"storage_limit_bytes,omitempty"`
	MaxUsers           *int      `json:"max_users,omitempty"`
	CustomMonthlyPrice *float64  `json:"custom_monthly_price,omitempty"`
	CustomAnnualPrice  *float64  `json:"custom_annual_price,omitempty"`
}

// UserAdminCreate creates an account with optional admin limits.
type UserAdminCreate struct {
	UserCreate
	UserAdminFields
}

// UserUpdate changes the basic profile fields. Nil fields are left untouched.
type UserUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// UserAdminUpdate is a partial update including admin limits.
type UserAdminUpdate struct {
	UserUpdate
	UserAdminFields
}

// PasswordChange is the body of PUT /users/me/password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// LoginResponse carries the bearer token issued by /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TrialStatus reports whether the caller is still on a trial.
type TrialStatus struct {
	TrialActive bool           `json:"trial_active"`
	Limits      map[string]any `json:"limits,omitempty"`
}

// UserQuery paginates the user listing. Nil fields are not sent.
type UserQuery struct {
	Skip  *int
	Limit *int
}
