package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"performanceEvaluation/models"
)

func (s *Server) listCriteria(c *gin.Context) {
	criteria, err := s.criteria.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, criteria)
}

type createCriterionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

func (s *Server) createCriterion(c *gin.Context) {
	var req createCriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Weight == 0 {
		req.Weight = 1.0
	}
	created, err := s.criteria.Create(c.Request.Context(), models.Criterion{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateCriterion(c *gin.Context) {
	var patch models.CriterionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	updated, err := s.criteria.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCriterion(c *gin.Context) {
	if err := s.criteria.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "criterion deleted"})
}
