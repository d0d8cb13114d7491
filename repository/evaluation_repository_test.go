package repository_test

import (
	"context"
	"errors"
	"testing"

	"performanceEvaluation/internal/testutil"
	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

type evalFixture struct {
	evals     *repository.EvaluationRepository
	users     *repository.UserRepository
	criteria  *repository.CriterionRepository
	employee  models.User
	evaluator models.User
	quality   models.Criterion
	teamwork  models.Criterion
}

func newEvalFixture(t *testing.T) *evalFixture {
	t.Helper()
	cols := testutil.OpenTestCollections(t)
	f := &evalFixture{
		evals:    repository.NewEvaluationRepository(cols.Evaluations, cols.Users, cols.Criteria),
		users:    repository.NewUserRepository(cols.Users),
		criteria: repository.NewCriterionRepository(cols.Criteria),
	}
	f.employee = testutil.SeedUser(t, f.users, "emma", models.RoleEmployee)
	f.evaluator = testutil.SeedUser(t, f.users, "victor", models.RoleEvaluator)
	f.quality = testutil.SeedCriterion(t, f.criteria, "Quality", 2.0)
	f.teamwork = testutil.SeedCriterion(t, f.criteria, "Teamwork", 1.0)
	return f
}

func (f *evalFixture) valid() models.Evaluation {
	return models.Evaluation{
		EmployeeID:  f.employee.ID,
		EvaluatorID: f.evaluator.ID,
		Scores:      map[string]int{f.quality.ID: 4, f.teamwork.ID: 3},
		Comments:    "solid quarter",
	}
}

func TestEvaluationRepository_CreateDefaults(t *testing.T) {
	f := newEvalFixture(t)
	ctx := context.Background()

	created, err := f.evals.Create(ctx, f.valid())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Date == "" || created.CreatedAt.IsZero() {
		t.Fatalf("missing defaults: %+v", created)
	}
	if created.Status != models.StatusDraft {
		t.Fatalf("expected draft status, got %q", created.Status)
	}
}

func TestEvaluationRepository_ReferenceChecks(t *testing.T) {
	f := newEvalFixture(t)
	ctx := context.Background()

	e := f.valid()
	e.EmployeeID = "u-missing"
	if _, err := f.evals.Create(ctx, e); !errors.Is(err, repository.ErrBadReference) {
		t.Fatalf("expected ErrBadReference for employee, got %v", err)
	}

	e = f.valid()
	e.EvaluatorID = "u-missing"
	if _, err := f.evals.Create(ctx, e); !errors.Is(err, repository.ErrBadReference) {
		t.Fatalf("expected ErrBadReference for evaluator, got %v", err)
	}

	e = f.valid()
	e.Scores["c-missing"] = 3
	if _, err := f.evals.Create(ctx, e); !errors.Is(err, repository.ErrBadReference) {
		t.Fatalf("expected ErrBadReference for criterion, got %v", err)
	}
}

func TestEvaluationRepository_Validation(t *testing.T) {
	f := newEvalFixture(t)
	ctx := context.Background()

	e := f.valid()
	e.Scores = map[string]int{}
	if _, err := f.evals.Create(ctx, e); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty scores, got %v", err)
	}

	e = f.valid()
	e.Scores[f.quality.ID] = 9
	if _, err := f.evals.Create(ctx, e); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for out-of-range score, got %v", err)
	}

	e = f.valid()
	e.Status = models.EvaluationStatus("pending")
	if _, err := f.evals.Create(ctx, e); !errors.Is(err, models.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown status, got %v", err)
	}
}

func TestEvaluationRepository_UpdateAndScopedLists(t *testing.T) {
	f := newEvalFixture(t)
	ctx := context.Background()

	created, err := f.evals.Create(ctx, f.valid())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	final := models.StatusFinal
	comments := "finalized"
	updated, err := f.evals.Update(ctx, created.ID, models.EvaluationPatch{Status: &final, Comments: &comments})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusFinal || updated.Comments != "finalized" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at not bumped")
	}
	// Scores stay untouched when the patch omits them.
	if len(updated.Scores) != 2 || updated.Scores[f.quality.ID] != 4 {
		t.Fatalf("scores changed unexpectedly: %+v", updated.Scores)
	}

	// Patched scores must still reference existing criteria.
	if _, err := f.evals.Update(ctx, created.ID, models.EvaluationPatch{Scores: map[string]int{"c-missing": 3}}); !errors.Is(err, repository.ErrBadReference) {
		t.Fatalf("expected ErrBadReference, got %v", err)
	}

	byEvaluator, err := f.evals.ListByEvaluator(ctx, f.evaluator.ID)
	if err != nil || len(byEvaluator) != 1 {
		t.Fatalf("list by evaluator: %v len=%d", err, len(byEvaluator))
	}
	byEmployee, err := f.evals.ListByEmployee(ctx, f.employee.ID)
	if err != nil || len(byEmployee) != 1 {
		t.Fatalf("list by employee: %v len=%d", err, len(byEmployee))
	}
	none, err := f.evals.ListByEmployee(ctx, f.evaluator.ID)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no evaluations for evaluator as employee, got %d", len(none))
	}
}

func TestEvaluationRepository_DanglingReferencesTolerated(t *testing.T) {
	f := newEvalFixture(t)
	ctx := context.Background()

	created, err := f.evals.Create(ctx, f.valid())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Deleting the employee afterwards leaves the evaluation in place.
	if err := f.users.Delete(ctx, f.employee.ID); err != nil {
		t.Fatalf("delete employee: %v", err)
	}
	got, err := f.evals.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after employee delete: %v", err)
	}
	if got.EmployeeID != f.employee.ID {
		t.Fatalf("reference rewritten: %+v", got)
	}
}
