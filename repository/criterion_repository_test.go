package repository_test

import (
	"context"
	"errors"
	"testing"

	"performanceEvaluation/internal/store"
	"performanceEvaluation/internal/testutil"
	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

func TestCriterionRepository_CRUD(t *testing.T) {
	cols := testutil.OpenTestCollections(t)
	repo := repository.NewCriterionRepository(cols.Criteria)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.Criterion{Name: "  Quality  ", Description: " depth of work ", Weight: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Quality" || created.Description != "depth of work" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing assigned fields: %+v", created)
	}

	weight := 3.5
	updated, err := repo.Update(ctx, created.ID, models.CriterionPatch{Weight: &weight})
	if err != nil || updated.Weight != 3.5 || updated.Name != "Quality" {
		t.Fatalf("update: %v %+v", err, updated)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCriterionRepository_Validation(t *testing.T) {
	cols := testutil.OpenTestCollections(t)
	repo := repository.NewCriterionRepository(cols.Criteria)
	ctx := context.Background()

	if _, err := repo.Create(ctx, models.Criterion{Name: "Q", Weight: 1}); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for short name, got %v", err)
	}
	if _, err := repo.Create(ctx, models.Criterion{Name: "Quality", Weight: 0}); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero weight, got %v", err)
	}
	bad := -1.0
	created, err := repo.Create(ctx, models.Criterion{Name: "Quality", Weight: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Update(ctx, created.ID, models.CriterionPatch{Weight: &bad}); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative weight patch, got %v", err)
	}
}
