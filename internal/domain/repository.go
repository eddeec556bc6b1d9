package domain

import "context"

// Credentials holds the bearer token for the current operator. Clear is
// called when the backend rejects the token.
type Credentials interface {
	Token() string
	Clear()
}

// AuthService covers login and the caller's own account.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Profile(ctx context.Context) (*UserWithSubscription, error)
	UpdateProfile(ctx context.Context, in UserAdminUpdate) (*UserWithSubscription, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UserByID(ctx context.Context, id int64) (*UserWithSubscription, error)
	TrialStatus(ctx context.Context) (*TrialStatus, error)
}

// UserService manages accounts.
type UserService interface {
	ListUsers(ctx context.Context, q UserQuery) ([]UserWithSubscription, error)
	CreateUser(ctx context.Context, in UserAdminCreate) (*UserWithSubscription, error)
	UpdateUser(ctx context.Context, id int64, in UserAdminUpdate) (*UserWithSubscription, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ActivityService reads audit records.
type ActivityService interface {
	MyActivities(ctx context.Context, q ActivityQuery) ([]ActivityLog, error)
	RecentActivities(ctx context.Context, q ActivityQuery) ([]ActivityLog, error)
}

// PricePlanService manages billing tiers.
type PricePlanService interface {
	ListPlans(ctx context.Context, activeOnly bool) ([]PricePlan, error)
	PlanByID(ctx context.Context, id int64) (*PricePlan, error)
	CreatePlan(ctx context.Context, in PricePlanCreate) (*PricePlan, error)
	UpdatePlan(ctx context.Context, id int64, in PricePlanUpdate) (*PricePlan, error)
	DeletePlan(ctx context.Context, id int64) error
}

// BrandService manages white-label configurations.
type BrandService interface {
	ListBrands(ctx context.Context) ([]BrandSettings, error)
	BrandCount(ctx context.Context) (int, error)
	BrandByID(ctx context.Context, id int64) (*BrandSettings, error)
	CreateBrand(ctx context.Context, in BrandSettingsCreate) (*BrandSettings, error)
	UpdateBrand(ctx context.Context, id int64, in BrandSettingsUpdate) (*BrandSettings, error)
	DeleteBrand(ctx context.Context, id int64) error
}

// Backend is the full remote API surface used by the console.
type Backend interface {
	AuthService
	UserService
	ActivityService
	PricePlanService
	BrandService
}
