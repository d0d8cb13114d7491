package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"performanceEvaluation/internal/store"
	"performanceEvaluation/models"
)

type EvaluationRepository struct {
	evaluations *EvaluationCollection
	users       *UserCollection
	criteria    *CriterionCollection
}

// NewEvaluationRepository builds an evaluation repository. The users and
// criteria collections back the write-time reference checks.
func NewEvaluationRepository(evaluations *EvaluationCollection, users *UserCollection, criteria *CriterionCollection) *EvaluationRepository {
	return &EvaluationRepository{evaluations: evaluations, users: users, criteria: criteria}
}

// Create validates the evaluation, verifies every reference resolves, and
// persists it. Date defaults to today, status to draft.
func (r *EvaluationRepository) Create(ctx context.Context, e models.Evaluation) (models.Evaluation, error) {
	if e.Status == "" {
		e.Status = models.StatusDraft
	}
	if err := e.Validate(); err != nil {
		return models.Evaluation{}, err
	}
	if err := r.checkUserRef(ctx, "employee", e.EmployeeID); err != nil {
		return models.Evaluation{}, err
	}
	if err := r.checkUserRef(ctx, "evaluator", e.EvaluatorID); err != nil {
		return models.Evaluation{}, err
	}
	if err := r.checkCriterionRefs(ctx, e.Scores); err != nil {
		return models.Evaluation{}, err
	}
	now := time.Now().UTC()
	if e.Date == "" {
		e.Date = now.Format("2006-01-02")
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	return r.evaluations.Create(ctx, e)
}

func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (models.Evaluation, error) {
	return r.evaluations.Get(ctx, id)
}

func (r *EvaluationRepository) List(ctx context.Context) ([]models.Evaluation, error) {
	return r.evaluations.Load(ctx)
}

func (r *EvaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error) {
	return r.evaluations.Find(ctx, func(e models.Evaluation) bool { return e.EvaluatorID == evaluatorID })
}

func (r *EvaluationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]models.Evaluation, error) {
	return r.evaluations.Find(ctx, func(e models.Evaluation) bool { return e.EmployeeID == employeeID })
}

func (r *EvaluationRepository) Update(ctx context.Context, id string, patch models.EvaluationPatch) (models.Evaluation, error) {
	if err := patch.Validate(); err != nil {
		return models.Evaluation{}, err
	}
	if patch.Scores != nil {
		if len(patch.Scores) == 0 {
			return models.Evaluation{}, fmt.Errorf("%w: at least one score required", models.ErrInvalid)
		}
		if err := r.checkCriterionRefs(ctx, patch.Scores); err != nil {
			return models.Evaluation{}, err
		}
	}
	return r.evaluations.Update(ctx, id, func(e *models.Evaluation) { patch.Apply(e) })
}

func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	return r.evaluations.Delete(ctx, id)
}

func (r *EvaluationRepository) checkUserRef(ctx context.Context, kind, id string) error {
	if _, err := r.users.Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%s %s: %w", kind, id, ErrBadReference)
		}
		return err
	}
	return nil
}

func (r *EvaluationRepository) checkCriterionRefs(ctx context.Context, scores map[string]int) error {
	for criterionID := range scores {
		if _, err := r.criteria.Get(ctx, criterionID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("criterion %s: %w", criterionID, ErrBadReference)
			}
			return err
		}
	}
	return nil
}
