package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"performanceEvaluation/internal/store"
)

func (s *Server) reportSummary(c *gin.Context) {
	summaries, err := s.engine.AllEmployeeSummaries(c.Request.Context(), s.users)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// exportEvaluations streams the detail spreadsheet as an attachment.
func (s *Server) exportEvaluations(c *gin.Context) {
	ctx := c.Request.Context()
	evaluations, err := s.evals.List(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	criteria, err := s.criteria.List(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	users, err := s.users.List(ctx)
	if err != nil {
		s.fail(c, err)
		return
	}
	path, err := s.exporter.ExportEvaluationsDetail(evaluations, criteria, users, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// exportSummary streams the employee summary spreadsheet as an attachment.
func (s *Server) exportSummary(c *gin.Context) {
	summaries, err := s.engine.AllEmployeeSummaries(c.Request.Context(), s.users)
	if err != nil {
		s.fail(c, err)
		return
	}
	path, err := s.exporter.ExportEmployeeSummary(summaries, "")
	if err != nil {
		s.fail(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// createBackup snapshots the collection files into the backups directory.
func (s *Server) createBackup(c *gin.Context) {
	dir, n, err := store.Backup(s.cfg.Storage.DataDir, s.cfg.Storage.BackupsDir)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.log.Info("backup created", zap.String("dir", dir), zap.Int("files", n))
	c.JSON(http.StatusCreated, gin.H{"backup_dir": dir, "files": n})
}
