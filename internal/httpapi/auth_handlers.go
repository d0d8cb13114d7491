package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// login exchanges a username/password pair for a session token.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	u, err := s.authMgr.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	token, err := auth.IssueToken(s.cfg.Auth.JWTSecret, u, s.cfg.Auth.SessionTTL.Std())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u.Sanitized()})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// changePassword lets the caller rotate their own password.
func (s *Server) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	p := principal(c)
	if err := s.authMgr.ChangePassword(c.Request.Context(), p.UserID, req.OldPassword, req.NewPassword); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// dashboard returns role-specific aggregates for the landing view.
func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	p := principal(c)

	switch p.Role {
	case models.RoleAdmin:
		users, err := s.users.List(ctx)
		if err != nil {
			s.fail(c, err)
			return
		}
		criteria, err := s.criteria.List(ctx)
		if err != nil {
			s.fail(c, err)
			return
		}
		evaluations, err := s.evals.List(ctx)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":               p.Role,
			"total_users":        len(users),
			"total_criteria":     len(criteria),
			"total_evaluations":  len(evaluations),
			"recent_evaluations": recentEvaluations(evaluations, 5),
		})
	case models.RoleEvaluator:
		mine, err := s.evals.ListByEvaluator(ctx, p.UserID)
		if err != nil {
			s.fail(c, err)
			return
		}
		employees, err := s.users.ListByRole(ctx, models.RoleEmployee)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":               p.Role,
			"my_evaluations":     len(mine),
			"total_employees":    len(employees),
			"recent_evaluations": recentEvaluations(mine, 5),
		})
	case models.RoleEmployee:
		mine, err := s.evals.ListByEmployee(ctx, p.UserID)
		if err != nil {
			s.fail(c, err)
			return
		}
		summary, err := s.engine.EmployeeSummary(ctx, p.UserID)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":           p.Role,
			"my_evaluations": mine,
			"summary":        summary,
		})
	default:
		s.fail(c, fmt.Errorf("%w: unknown role %q", models.ErrInvalid, p.Role))
	}
}
