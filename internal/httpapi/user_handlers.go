package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/models"
)

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createUser(c *gin.Context) {
	var req auth.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	u, err := s.authMgr.CreateUser(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u.Sanitized())
}

func (s *Server) getUser(c *gin.Context) {
	u, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Sanitized())
}

func (s *Server) updateUser(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	u, err := s.users.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Sanitized())
}

func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == principal(c).UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot delete your own account"})
		return
	}
	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := s.authMgr.ResetPassword(c.Request.Context(), c.Param("id"), req.NewPassword); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("password reset for %s", c.Param("id"))})
}
