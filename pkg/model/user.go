package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxFullNameLength = 80
	MinPasswordLength = 6
)

var ErrFullNameEmpty = errors.New("full name must not be empty")
var ErrFullNameTooLong = fmt.Errorf("full name must not exceed %d characters", MaxFullNameLength)
var ErrEmailInvalid = errors.New("email address is not valid")
var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

// User represents the authenticated account. The session replaces the whole
// record after a successful fetch or update; individual fields are never
// mutated in place.
type User struct {
	ID          string    `json:"_id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ValidateFullName checks that a display name is non-empty and within limits.
func ValidateFullName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFullNameEmpty
	}
	if len(name) > MaxFullNameLength {
		return ErrFullNameTooLong
	}
	return nil
}

// ValidateEmail performs the same shallow shape check the registration form
// does: something before and after a single @, with a dot in the domain.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return ErrEmailInvalid
	}
	domain := email[at+1:]
	if domain == "" || !strings.Contains(domain, ".") {
		return ErrEmailInvalid
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePassword enforces the minimum length the backend requires.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
