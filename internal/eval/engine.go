// Package eval aggregates evaluation records into weighted scores and
// per-employee summaries.
package eval

import (
	"context"
	"sort"

	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

// Engine computes derived scores over the criteria and evaluation stores.
type Engine struct {
	criteria    repository.CriterionRepositoryI
	evaluations repository.EvaluationRepositoryI
}

func NewEngine(criteria repository.CriterionRepositoryI, evaluations repository.EvaluationRepositoryI) *Engine {
	return &Engine{criteria: criteria, evaluations: evaluations}
}

// CriteriaByID loads all criteria keyed by id.
func (e *Engine) CriteriaByID(ctx context.Context) (map[string]models.Criterion, error) {
	criteria, err := e.criteria.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]models.Criterion, len(criteria))
	for _, c := range criteria {
		m[c.ID] = c
	}
	return m, nil
}

// WeightedScore computes the weight-adjusted average of the scores. Scores
// for criteria that no longer resolve are skipped.
func WeightedScore(scores map[string]int, criteria map[string]models.Criterion) float64 {
	var totalWeighted, totalWeight float64
	for criterionID, score := range scores {
		c, ok := criteria[criterionID]
		if !ok {
			continue
		}
		totalWeighted += float64(score) * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return 0
	}
	return totalWeighted / totalWeight
}

// Summary holds per-employee aggregate statistics. Only final evaluations
// count toward the averages.
type Summary struct {
	EmployeeID       string             `json:"employee_id"`
	EmployeeName     string             `json:"employee_name,omitempty"`
	Email            string             `json:"email,omitempty"`
	TotalEvaluations int                `json:"total_evaluations"`
	FinalEvaluations int                `json:"final_evaluations"`
	AverageScore     float64            `json:"average_score"`
	LatestScore      float64            `json:"latest_score"`
	Latest           *models.Evaluation `json:"latest_evaluation,omitempty"`
}

// EmployeeSummary computes aggregate statistics for one employee.
func (e *Engine) EmployeeSummary(ctx context.Context, employeeID string) (Summary, error) {
	evaluations, err := e.evaluations.ListByEmployee(ctx, employeeID)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{EmployeeID: employeeID, TotalEvaluations: len(evaluations)}
	if len(evaluations) == 0 {
		return s, nil
	}
	criteria, err := e.CriteriaByID(ctx)
	if err != nil {
		return Summary{}, err
	}

	// Most recent first; CreatedAt breaks same-day ties.
	sort.Slice(evaluations, func(i, j int) bool {
		if evaluations[i].Date != evaluations[j].Date {
			return evaluations[i].Date > evaluations[j].Date
		}
		return evaluations[i].CreatedAt.After(evaluations[j].CreatedAt)
	})
	s.Latest = &evaluations[0]

	var sum float64
	for _, ev := range evaluations {
		if ev.Status != models.StatusFinal {
			continue
		}
		score := WeightedScore(ev.Scores, criteria)
		if s.FinalEvaluations == 0 {
			s.LatestScore = score
		}
		s.FinalEvaluations++
		sum += score
	}
	if s.FinalEvaluations > 0 {
		s.AverageScore = sum / float64(s.FinalEvaluations)
	}
	return s, nil
}

// AllEmployeeSummaries computes summaries for every user with the employee
// role, enriched with name and email.
func (e *Engine) AllEmployeeSummaries(ctx context.Context, users repository.UserRepositoryI) ([]Summary, error) {
	employees, err := users.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(employees))
	for _, emp := range employees {
		s, err := e.EmployeeSummary(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
		s.EmployeeName = emp.FullName
		if s.EmployeeName == "" {
			s.EmployeeName = emp.Username
		}
		s.Email = emp.Email
		summaries = append(summaries, s)
	}
	return summaries, nil
}
