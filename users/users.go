package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Role names assigned through the user_roles table.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID                 string    `json:"id,omitempty"`
	Email              string    `json:"email,omitempty"` // unique, used as token subject
	PasswordHash       string    `json:"-"`               // never serialize
	FirstName          string    `json:"first_name,omitempty"`
	LastName           string    `json:"last_name,omitempty"`
	Enabled            bool      `json:"enabled,omitempty"`
	AccountExpired     bool      `json:"account_expired,omitempty"`
	AccountLocked      bool      `json:"account_locked,omitempty"`
	CredentialsExpired bool      `json:"credentials_expired,omitempty"`
	Roles              []string  `json:"roles,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

// CanAuthenticate reports whether the account state allows a login.
func (u *User) CanAuthenticate() bool {
	return u.Enabled && !u.AccountExpired && !u.AccountLocked && !u.CredentialsExpired
}

func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Authorities returns the granted-authority names derived from the user's
// roles ("ROLE_" prefix, matching the role naming of the permission tables).
func (u *User) Authorities() []string {
	authorities := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		authorities = append(authorities, "ROLE_"+r)
	}
	return authorities
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
