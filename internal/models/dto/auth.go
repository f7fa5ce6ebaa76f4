package dto

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/xknRiya/cats-api/internal/models"
)

const (
	minNameLength     = 5
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	maxPasswordLength = 72
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace and validates the request in place.
func (r *RegisterRequest) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)

	if len(r.Name) < minNameLength {
		return errors.New("name must be longer than or equal to 5 characters")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace and validates the request in place.
func (r *LoginRequest) Normalize() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)

	if err := validateEmail(r.Email); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ProfileResponse is the public view of an account: never the password or its hash.
type ProfileResponse struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return errors.New("email must be an email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be longer than or equal to 8 characters")
	}
	if len(password) > maxPasswordLength {
		return errors.New("password must be shorter than or equal to 72 bytes")
	}
	return nil
}
