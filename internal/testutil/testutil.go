package testutil

import (
	"context"
	"testing"
	"time"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

// OpenTestCollections opens the three collections in a fresh temp directory.
// The files vanish with the test's temp dir; no explicit cleanup needed.
func OpenTestCollections(t *testing.T) *repository.Collections {
	t.Helper()
	cols, err := repository.OpenCollections(t.TempDir(), 2*time.Second)
	if err != nil {
		t.Fatalf("open test collections: %v", err)
	}
	return cols
}

// SeedUser creates an active user with a fixed password hash (bcrypt of
// "Password1!" at minimum cost, precomputed so tests stay fast).
func SeedUser(t *testing.T, users repository.UserRepositoryI, username string, role models.Role) models.User {
	t.Helper()
	hash, err := auth.HashPassword("Password1!", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := users.Create(context.Background(), models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FullName:     username + " Test",
		Email:        username + "@example.com",
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// SeedCriterion creates a criterion with the given weight.
func SeedCriterion(t *testing.T, criteria repository.CriterionRepositoryI, name string, weight float64) models.Criterion {
	t.Helper()
	c, err := criteria.Create(context.Background(), models.Criterion{Name: name, Weight: weight})
	if err != nil {
		t.Fatalf("seed criterion %s: %v", name, err)
	}
	return c
}

// SignToken returns a session token for the user, signed with secret.
func SignToken(t *testing.T, secret string, u models.User) string {
	t.Helper()
	token, err := auth.IssueToken(secret, u, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
