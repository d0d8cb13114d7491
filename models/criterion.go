package models

import (
	"fmt"
	"strings"
	"time"
)

// Criterion is one axis employees are scored against. Weight scales the
// criterion's contribution to an evaluation's weighted average.
type Criterion struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Weight      float64   `json:"weight"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c Criterion) RecordID() string       { return c.ID }
func (c *Criterion) SetRecordID(id string) { c.ID = id }

// Validate checks the criterion fields.
func (c *Criterion) Validate() error {
	if len(strings.TrimSpace(c.Name)) < 2 {
		return fmt.Errorf("%w: criterion name must be at least 2 characters", ErrInvalid)
	}
	if c.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalid)
	}
	return nil
}

// CriterionPatch is a partial update to a criterion.
type CriterionPatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
}

// Apply merges the patch into the criterion.
func (p CriterionPatch) Apply(c *Criterion) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
}

// Validate checks only the fields the patch would change.
func (p CriterionPatch) Validate() error {
	if p.Name != nil && len(strings.TrimSpace(*p.Name)) < 2 {
		return fmt.Errorf("%w: criterion name must be at least 2 characters", ErrInvalid)
	}
	if p.Weight != nil && *p.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalid)
	}
	return nil
}
