package forms

import (
	"strings"

	"console/internal/domain"
)

// LoginForm is the console sign-in form.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims the email and validates both fields.
func (f *LoginForm) Normalize() error {
	f.Email = strings.TrimSpace(f.Email)
	return Validate(f)
}

// PasswordForm changes the signed-in operator's password.
type PasswordForm struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirm_password" validate:"omitempty,eqfield=NewPassword"`
}

func (f PasswordForm) Payload() (domain.PasswordChange, error) {
	if err := Validate(f); err != nil {
		return domain.PasswordChange{}, err
	}
	return domain.PasswordChange{CurrentPassword: f.CurrentPassword, NewPassword: f.NewPassword}, nil
}

// ProfileForm edits the operator's own name and email.
type ProfileForm struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func (f ProfileForm) Payload() (domain.UserAdminUpdate, error) {
	return UserUpdateForm{FirstName: f.FirstName, LastName: f.LastName, Email: f.Email}.Payload()
}
