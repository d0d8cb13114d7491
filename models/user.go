package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Role determines what a user may do in the system.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEvaluator Role = "evaluator"
	RoleEmployee  Role = "employee"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEvaluator, RoleEmployee:
		return true
	}
	return false
}

// User represents an account in the system. PasswordHash is a bcrypt hash;
// use Sanitized before handing a user to clients.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) RecordID() string       { return u.ID }
func (u *User) SetRecordID(id string) { u.ID = id }

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address has a plausible mailbox@domain shape.
func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePassword enforces the minimum plaintext password policy.
// Hashing and comparison are the auth package's concern.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalid)
	}
	return nil
}

// Validate checks the user fields that persist to the store.
func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrInvalid)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalid, u.Role)
	}
	if !ValidateEmail(u.Email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalid)
	}
	return nil
}

// Sanitized returns a copy with the password hash cleared.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserPatch is a partial update to a user. Nil fields are left unchanged,
// so an intentionally cleared value and an omitted one stay distinguishable.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`

	// PasswordHash is set by the auth layer only; it is never bound from
	// request bodies.
	PasswordHash *string `json:"-"`
}

// Apply merges the patch into the user.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// Validate checks only the fields the patch would change.
func (p UserPatch) Validate() error {
	if p.Username != nil && len(strings.TrimSpace(*p.Username)) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrInvalid)
	}
	if p.Role != nil && !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalid, *p.Role)
	}
	if p.Email != nil && !ValidateEmail(*p.Email) {
		return fmt.Errorf("%w: invalid email format", ErrInvalid)
	}
	return nil
}
