package httpapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"performanceEvaluation/internal/eval"
	"performanceEvaluation/models"
)

// evaluationView is an evaluation enriched with resolved names and its
// weighted score. Dangling references keep the raw id as the name.
type evaluationView struct {
	models.Evaluation
	EmployeeName  string  `json:"employee_name"`
	EvaluatorName string  `json:"evaluator_name"`
	WeightedScore float64 `json:"weighted_score"`
}

func (s *Server) listEvaluations(c *gin.Context) {
	ctx := c.Request.Context()
	p := principal(c)

	var (
		evaluations []models.Evaluation
		err         error
	)
	switch p.Role {
	case models.RoleAdmin:
		evaluations, err = s.evals.List(ctx)
	case models.RoleEvaluator:
		evaluations, err = s.evals.ListByEvaluator(ctx, p.UserID)
	default:
		evaluations, err = s.evals.ListByEmployee(ctx, p.UserID)
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	views, err := s.enrich(c, evaluations)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

type createEvaluationRequest struct {
	EmployeeID string                  `json:"employee_id" binding:"required"`
	Scores     map[string]int          `json:"scores" binding:"required"`
	Comments   string                  `json:"comments"`
	Status     models.EvaluationStatus `json:"status"`
}

// createEvaluation records a new evaluation authored by the session user.
func (s *Server) createEvaluation(c *gin.Context) {
	var req createEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	created, err := s.evals.Create(c.Request.Context(), models.Evaluation{
		EmployeeID:  req.EmployeeID,
		EvaluatorID: principal(c).UserID,
		Scores:      req.Scores,
		Comments:    req.Comments,
		Status:      req.Status,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getEvaluation(c *gin.Context) {
	ctx := c.Request.Context()
	ev, err := s.evals.GetByID(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	p := principal(c)
	if p.Role == models.RoleEmployee && ev.EmployeeID != p.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to view this evaluation"})
		return
	}
	views, err := s.enrich(c, []models.Evaluation{ev})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views[0])
}

// updateEvaluation applies a patch. Admins may edit any evaluation; the
// owning evaluator may edit while it is still a draft.
func (s *Server) updateEvaluation(c *gin.Context) {
	ctx := c.Request.Context()
	p := principal(c)

	ev, err := s.evals.GetByID(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if p.Role != models.RoleAdmin && !(p.Role == models.RoleEvaluator && ev.EvaluatorID == p.UserID && ev.Status == models.StatusDraft) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to edit this evaluation"})
		return
	}

	var patch models.EvaluationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	updated, err := s.evals.Update(ctx, ev.ID, patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteEvaluation(c *gin.Context) {
	if err := s.evals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "evaluation deleted"})
}

// enrich resolves user names and computes weighted scores for the views.
func (s *Server) enrich(c *gin.Context, evaluations []models.Evaluation) ([]evaluationView, error) {
	ctx := c.Request.Context()
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		name := u.FullName
		if name == "" {
			name = u.Username
		}
		names[u.ID] = name
	}
	criteria, err := s.engine.CriteriaByID(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]evaluationView, 0, len(evaluations))
	for _, ev := range evaluations {
		views = append(views, evaluationView{
			Evaluation:    ev,
			EmployeeName:  nameOr(names, ev.EmployeeID),
			EvaluatorName: nameOr(names, ev.EvaluatorID),
			WeightedScore: eval.WeightedScore(ev.Scores, criteria),
		})
	}
	return views, nil
}

func nameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

// recentEvaluations returns the n most recently created evaluations.
func recentEvaluations(evaluations []models.Evaluation, n int) []models.Evaluation {
	sorted := make([]models.Evaluation, len(evaluations))
	copy(sorted, evaluations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
