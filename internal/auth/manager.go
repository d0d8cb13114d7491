package auth

import (
	"context"
	"errors"
	"fmt"

	"performanceEvaluation/internal/store"
	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

// ErrInvalidCredentials reports a failed login. Unknown usernames, wrong
// passwords, and deactivated accounts are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Manager implements the account flows: login, user creation, password
// change and reset, and first-run admin bootstrap.
type Manager struct {
	users      repository.UserRepositoryI
	bcryptCost int
}

func NewManager(users repository.UserRepositoryI, bcryptCost int) *Manager {
	return &Manager{users: users, bcryptCost: bcryptCost}
}

// Authenticate verifies the username/password pair and returns the matching
// active user.
func (m *Manager) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := m.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if !u.Active || !VerifyPassword(password, u.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// NewUser carries the fields needed to register an account.
type NewUser struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
}

// CreateUser validates the input, hashes the password, and persists the
// account as active.
func (m *Manager) CreateUser(ctx context.Context, in NewUser) (models.User, error) {
	if err := models.ValidatePassword(in.Password); err != nil {
		return models.User{}, err
	}
	hash, err := HashPassword(in.Password, m.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		FullName:     in.FullName,
		Email:        in.Email,
		Active:       true,
	}
	return m.users.Create(ctx, u)
}

// ChangePassword replaces the user's password after verifying the old one.
func (m *Manager) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !VerifyPassword(oldPassword, u.PasswordHash) {
		return fmt.Errorf("old password: %w", ErrInvalidCredentials)
	}
	return m.setPassword(ctx, userID, newPassword)
}

// ResetPassword replaces the user's password without verifying the old one.
// Intended for administrative flows.
func (m *Manager) ResetPassword(ctx context.Context, userID, newPassword string) error {
	return m.setPassword(ctx, userID, newPassword)
}

func (m *Manager) setPassword(ctx context.Context, userID, newPassword string) error {
	if err := models.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := HashPassword(newPassword, m.bcryptCost)
	if err != nil {
		return err
	}
	_, err = m.users.Update(ctx, userID, models.UserPatch{PasswordHash: &hash})
	return err
}

// EnsureAdmin creates the default administrator account on first run. It is
// a no-op when any admin already exists. Returns true when an account was
// created; the default password is intended to be changed immediately.
func (m *Manager) EnsureAdmin(ctx context.Context, in NewUser) (bool, error) {
	admins, err := m.users.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if len(admins) > 0 {
		return false, nil
	}
	in.Role = models.RoleAdmin
	if _, err := m.CreateUser(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}
