// Package users manages accounts and their roles.
package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role grants access to API operations. Experts may do everything guests may.
type Role string

const (
	RoleGuest  Role = "guest"
	RoleExpert Role = "expert"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleExpert
}

// Allows reports whether r satisfies a requirement for required.
func (r Role) Allows(required Role) bool {
	switch required {
	case RoleGuest:
		return r.Valid()
	case RoleExpert:
		return r == RoleExpert
	}
	return false
}

// User is an account. The password hash is never serialised.
type User struct {
	ID        uuid.UUID `json:"id"`
	Login     string    `json:"login"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const minPasswordLength = 6

// CreateCommand registers a new account. Role defaults to guest.
type CreateCommand struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Validate normalises and checks the command.
func (c *CreateCommand) Validate() error {
	c.Login = strings.TrimSpace(c.Login)
	if c.Role == "" {
		c.Role = RoleGuest
	}

	switch {
	case c.Login == "":
		return fmt.Errorf("%w: login is required", ErrInvalidInput)
	case len(c.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	case !c.Role.Valid():
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, c.Role)
	}
	return nil
}

// UpdateCommand changes the login and optionally the password. An empty
// password keeps the current one.
type UpdateCommand struct {
	Login    string `json:"login"`
	Password string `json:"password,omitempty"`
}

// Validate normalises and checks the command.
func (c *UpdateCommand) Validate() error {
	c.Login = strings.TrimSpace(c.Login)
	if c.Login == "" {
		return fmt.Errorf("%w: login is required", ErrInvalidInput)
	}
	if c.Password != "" && len(c.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// RoleCommand assigns a role.
type RoleCommand struct {
	Role Role `json:"role"`
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a candidate password.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
