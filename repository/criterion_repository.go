package repository

import (
	"context"
	"strings"
	"time"

	"performanceEvaluation/models"
)

type CriterionRepository struct {
	criteria *CriterionCollection
}

func NewCriterionRepository(criteria *CriterionCollection) *CriterionRepository {
	return &CriterionRepository{criteria: criteria}
}

func (r *CriterionRepository) Create(ctx context.Context, c models.Criterion) (models.Criterion, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if err := c.Validate(); err != nil {
		return models.Criterion{}, err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return r.criteria.Create(ctx, c)
}

func (r *CriterionRepository) GetByID(ctx context.Context, id string) (models.Criterion, error) {
	return r.criteria.Get(ctx, id)
}

func (r *CriterionRepository) List(ctx context.Context) ([]models.Criterion, error) {
	return r.criteria.Load(ctx)
}

func (r *CriterionRepository) Update(ctx context.Context, id string, patch models.CriterionPatch) (models.Criterion, error) {
	if err := patch.Validate(); err != nil {
		return models.Criterion{}, err
	}
	return r.criteria.Update(ctx, id, func(c *models.Criterion) { patch.Apply(c) })
}

// Delete removes the criterion. Evaluations keep their recorded scores for
// it; the scoring engine simply skips criteria it can no longer resolve.
func (r *CriterionRepository) Delete(ctx context.Context, id string) error {
	return r.criteria.Delete(ctx, id)
}
