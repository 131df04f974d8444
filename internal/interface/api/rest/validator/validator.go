package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"file-share-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
	maxNameLen     = 100
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// IsEmail reports whether s is a bare address (no display name).
func IsEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	validateName(errs, r.Name)
	validateEmail(errs, r.Email)
	validatePassword(errs, "password", r.Password)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateProfile(r auth.ProfileRequest) map[string]string {
	errs := make(map[string]string)

	if r.Name != nil {
		validateName(errs, *r.Name)
	}
	if r.Email != nil {
		validateEmail(errs, *r.Email)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateChangePassword(r auth.ChangePasswordRequest) map[string]string {
	errs := make(map[string]string)

	if r.CurrentPassword == "" {
		errs["currentPassword"] = "currentPassword is required"
	}
	validatePassword(errs, "newPassword", r.NewPassword)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateName(errs map[string]string, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs["name"] = "name must be at most 100 characters"
	}
}

func validateEmail(errs map[string]string, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		errs["email"] = "email is required"
	} else if !IsEmail(email) {
		errs["email"] = "invalid email format"
	}
}

func validatePassword(errs map[string]string, field, password string) {
	if strings.TrimSpace(password) == "" {
		errs[field] = field + " is required"
	} else if l := len(password); l < minPasswordLen || l > maxPasswordLen {
		errs[field] = field + " length must be 8–72 characters"
	}
}
