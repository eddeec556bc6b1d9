package forms

import (
	"strings"

	"console/internal/domain"
)

// UserCreateForm is the "Add User" dialog.
type UserCreateForm struct {
	FirstName          string   `json:"first_name" validate:"required"`
	LastName           string   `json:"last_name" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Password           string   `json:"password" validate:"required,min=8"`
	Role               string   `json:"role" validate:"omitempty,oneof=admin user"`
	StorageLimitBytes  *int64   `json:"storage_limit_bytes" validate:"omitempty,gte=0"`
	MaxUsers           *int     `json:"max_users" validate:"omitempty,gte=1"`
	CustomMonthlyPrice *float64 `json:"custom_monthly_price" validate:"omitempty,gte=0"`
	CustomAnnualPrice  *float64 `json:"custom_annual_price" validate:"omitempty,gte=0"`
}

func (f *UserCreateForm) normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Role = strings.ToLower(strings.TrimSpace(f.Role))
}

// Payload validates the form and builds the create request. Role defaults to user.
func (f UserCreateForm) Payload() (domain.UserAdminCreate, error) {
	f.normalize()
	if err := Validate(f); err != nil {
		return domain.UserAdminCreate{}, err
	}
	role := domain.UserRoleUser
	if f.Role != "" {
		role = domain.UserRole(f.Role)
	}
	return domain.UserAdminCreate{
		UserCreate: domain.UserCreate{
			Email:     f.Email,
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Password:  f.Password,
		},
		UserAdminFields: domain.UserAdminFields{
			Role:               &role,
			StorageLimitBytes:  f.StorageLimitBytes,
			MaxUsers:           f.MaxUsers,
			CustomMonthlyPrice: f.CustomMonthlyPrice,
			CustomAnnualPrice:  f.CustomAnnualPrice,
		},
	}, nil
}

// UserUpdateForm edits an account; omitted fields are left unchanged.
type UserUpdateForm struct {
	FirstName          *string  `json:"first_name" validate:"omitempty,min=1"`
	LastName           *string  `json:"last_name" validate:"omitempty,min=1"`
	Email              *string  `json:"email" validate:"omitempty,email"`
	Role               *string  `json:"role" validate:"omitempty,oneof=admin user"`
	StorageLimitBytes  *int64   `json:"storage_limit_bytes" validate:"omitempty,gte=0"`
	MaxUsers           *int     `json:"max_users" validate:"omitempty,gte=1"`
	CustomMonthlyPrice *float64 `json:"custom_monthly_price" validate:"omitempty,gte=0"`
	CustomAnnualPrice  *float64 `json:"custom_annual_price" validate:"omitempty,gte=0"`
}

// Payload validates the form and builds a partial update. An update that changes nothing is rejected.
func (f UserUpdateForm) Payload() (domain.UserAdminUpdate, error) {
	f.FirstName = trimmed(f.FirstName)
	f.LastName = trimmed(f.LastName)
	if f.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*f.Email))
		f.Email = &e
	}
	if f.Role != nil {
		r := strings.ToLower(strings.TrimSpace(*f.Role))
		f.Role = &r
	}
	if err := Validate(f); err != nil {
		return domain.UserAdminUpdate{}, err
	}
	out := domain.UserAdminUpdate{
		UserUpdate: domain.UserUpdate{
			Email:     f.Email,
			FirstName: f.FirstName,
			LastName:  f.LastName,
		},
		UserAdminFields: domain.UserAdminFields{
			StorageLimitBytes:  f.StorageLimitBytes,
			MaxUsers:           f.MaxUsers,
			CustomMonthlyPrice: f.CustomMonthlyPrice,
			CustomAnnualPrice:  f.CustomAnnualPrice,
		},
	}
	if f.Role != nil {
		role := domain.UserRole(*f.Role)
		out.Role = &role
	}
	if out == (domain.UserAdminUpdate{}) {
		return out, invalid("body", "at least one field must be provided")
	}
	return out, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
