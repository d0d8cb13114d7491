package models

import (
	"fmt"
	"time"
)

// EvaluationStatus tracks an evaluation's lifecycle.
type EvaluationStatus string

const (
	StatusDraft    EvaluationStatus = "draft"
	StatusFinal    EvaluationStatus = "final"
	StatusArchived EvaluationStatus = "archived"
)

// Valid reports whether the status is one of the known statuses.
func (s EvaluationStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusFinal, StatusArchived:
		return true
	}
	return false
}

// Rating bounds for individual criterion scores.
const (
	MinRating = 1
	MaxRating = 5
)

// Evaluation records one evaluator scoring one employee. Scores maps
// criterion id to a rating in [MinRating, MaxRating]; only final
// evaluations count toward summary averages.
type Evaluation struct {
	ID          string           `json:"id"`
	EmployeeID  string           `json:"employee_id"`
	EvaluatorID string           `json:"evaluator_id"`
	Date        string           `json:"date"` // YYYY-MM-DD
	Scores      map[string]int   `json:"scores"`
	Comments    string           `json:"comments"`
	Status      EvaluationStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (e Evaluation) RecordID() string       { return e.ID }
func (e *Evaluation) SetRecordID(id string) { e.ID = id }

// Validate checks the evaluation fields. Reference resolution against the
// users and criteria collections happens in the repository layer.
func (e *Evaluation) Validate() error {
	if e.EmployeeID == "" || e.EvaluatorID == "" {
		return fmt.Errorf("%w: employee and evaluator ids required", ErrInvalid)
	}
	if len(e.Scores) == 0 {
		return fmt.Errorf("%w: at least one score required", ErrInvalid)
	}
	for criterionID, score := range e.Scores {
		if score < MinRating || score > MaxRating {
			return fmt.Errorf("%w: score %d for %s outside [%d,%d]", ErrInvalid, score, criterionID, MinRating, MaxRating)
		}
	}
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, e.Status)
	}
	return nil
}

// EvaluationPatch is a partial update to an evaluation. A non-nil Scores map
// replaces the existing map wholesale.
type EvaluationPatch struct {
	Scores   map[string]int    `json:"scores,omitempty"`
	Comments *string           `json:"comments,omitempty"`
	Status   *EvaluationStatus `json:"status,omitempty"`
}

// Apply merges the patch into the evaluation and bumps UpdatedAt.
func (p EvaluationPatch) Apply(e *Evaluation) {
	if p.Scores != nil {
		e.Scores = p.Scores
	}
	if p.Comments != nil {
		e.Comments = *p.Comments
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	e.UpdatedAt = time.Now().UTC()
}

// Validate checks only the fields the patch would change.
func (p EvaluationPatch) Validate() error {
	for criterionID, score := range p.Scores {
		if score < MinRating || score > MaxRating {
			return fmt.Errorf("%w: score %d for %s outside [%d,%d]", ErrInvalid, score, criterionID, MinRating, MaxRating)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, *p.Status)
	}
	return nil
}
