package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"performanceEvaluation/internal/store"
	"performanceEvaluation/models"
)

type UserRepository struct {
	users *UserCollection
}

func NewUserRepository(users *UserCollection) *UserRepository {
	return &UserRepository{users: users}
}

// Create validates and persists a new user. The username must be unique
// across the collection.
func (r *UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if _, err := r.GetByUsername(ctx, u.Username); err == nil {
		return models.User{}, fmt.Errorf("%s: %w", u.Username, ErrUsernameTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		return models.User{}, err
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return r.users.Create(ctx, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.users.Get(ctx, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	matches, err := r.users.Find(ctx, func(u models.User) bool { return u.Username == username })
	if err != nil {
		return models.User{}, err
	}
	if len(matches) == 0 {
		return models.User{}, fmt.Errorf("username %s: %w", username, store.ErrNotFound)
	}
	return matches[0], nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.users.Load(ctx)
}

func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.users.Find(ctx, func(u models.User) bool { return u.Role == role })
}

// Update applies the patch to the stored user. A username change keeps the
// uniqueness invariant.
func (r *UserRepository) Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	if err := patch.Validate(); err != nil {
		return models.User{}, err
	}
	if patch.Username != nil {
		other, err := r.GetByUsername(ctx, *patch.Username)
		if err == nil && other.ID != id {
			return models.User{}, fmt.Errorf("%s: %w", *patch.Username, ErrUsernameTaken)
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return models.User{}, err
		}
	}
	return r.users.Update(ctx, id, func(u *models.User) { patch.Apply(u) })
}

// Delete removes the user. Evaluations referencing the user are left in
// place; readers fall back to the raw id for unresolvable references.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.users.Delete(ctx, id)
}
