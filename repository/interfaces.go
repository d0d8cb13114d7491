package repository

import (
	"context"

	"performanceEvaluation/models"
)

// UserRepositoryI defines operations on User records.
type UserRepositoryI interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, id string) error
}

// CriterionRepositoryI defines operations on Criterion records.
type CriterionRepositoryI interface {
	Create(ctx context.Context, c models.Criterion) (models.Criterion, error)
	GetByID(ctx context.Context, id string) (models.Criterion, error)
	List(ctx context.Context) ([]models.Criterion, error)
	Update(ctx context.Context, id string, patch models.CriterionPatch) (models.Criterion, error)
	Delete(ctx context.Context, id string) error
}

// EvaluationRepositoryI defines operations on Evaluation records.
type EvaluationRepositoryI interface {
	Create(ctx context.Context, e models.Evaluation) (models.Evaluation, error)
	GetByID(ctx context.Context, id string) (models.Evaluation, error)
	List(ctx context.Context) ([]models.Evaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]models.Evaluation, error)
	Update(ctx context.Context, id string, patch models.EvaluationPatch) (models.Evaluation, error)
	Delete(ctx context.Context, id string) error
}
