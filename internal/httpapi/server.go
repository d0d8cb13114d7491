// Package httpapi exposes the record store, auth flows, scoring engine, and
// exporter over a JSON HTTP API. It owns translating typed store failures
// into status codes; the core packages never log or retry.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/internal/config"
	"performanceEvaluation/internal/eval"
	"performanceEvaluation/internal/report"
	"performanceEvaluation/internal/store"
	"performanceEvaluation/models"
	"performanceEvaluation/repository"
)

// Server bundles dependencies and implements the HTTP handlers.
type Server struct {
	cfg      *config.Config
	log      *zap.Logger
	users    repository.UserRepositoryI
	criteria repository.CriterionRepositoryI
	evals    repository.EvaluationRepositoryI
	authMgr  *auth.Manager
	engine   *eval.Engine
	exporter *report.Exporter
	router   *gin.Engine
}

// New wires the server and its routes.
func New(cfg *config.Config, log *zap.Logger, users repository.UserRepositoryI, criteria repository.CriterionRepositoryI, evals repository.EvaluationRepositoryI, authMgr *auth.Manager, engine *eval.Engine, exporter *report.Exporter) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		users:    users,
		criteria: criteria,
		evals:    evals,
		authMgr:  authMgr,
		engine:   engine,
		exporter: exporter,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the configured gin engine (exported for tests).
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "HEAD"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	api.POST("/login", s.login)

	authed := api.Group("", s.requireAuth())
	authed.POST("/password", s.changePassword)
	authed.GET("/dashboard", s.dashboard)

	users := authed.Group("/users", s.requireAdmin())
	users.GET("", s.listUsers)
	users.POST("", s.createUser)
	users.GET("/:id", s.getUser)
	users.PUT("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)
	users.POST("/:id/password", s.resetPassword)

	authed.GET("/criteria", s.listCriteria)
	criteria := authed.Group("/criteria", s.requireAdmin())
	criteria.POST("", s.createCriterion)
	criteria.PUT("/:id", s.updateCriterion)
	criteria.DELETE("/:id", s.deleteCriterion)

	evals := authed.Group("/evaluations")
	evals.GET("", s.listEvaluations)
	evals.POST("", s.requireRole(models.RoleAdmin, models.RoleEvaluator), s.createEvaluation)
	evals.GET("/:id", s.getEvaluation)
	evals.PUT("/:id", s.updateEvaluation)
	evals.DELETE("/:id", s.requireAdmin(), s.deleteEvaluation)

	reports := authed.Group("/reports", s.requireRole(models.RoleAdmin, models.RoleEvaluator))
	reports.GET("/summary", s.reportSummary)

	exports := authed.Group("/exports")
	exports.GET("/evaluations", s.requireAdmin(), s.exportEvaluations)
	exports.GET("/summary", s.requireRole(models.RoleAdmin, models.RoleEvaluator), s.exportSummary)

	authed.POST("/backups", s.requireAdmin(), s.createBackup)

	return r
}

// Start begins serving on the configured address and returns a shutdown
// function that drains in-flight requests.
func Start(cfg *config.Config, log *zap.Logger, s *Server) (func(context.Context) error, error) {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	// Give an immediate bind failure a moment to surface.
	select {
	case err := <-errc:
		return nil, err
	case <-time.After(50 * time.Millisecond):
	}
	return srv.Shutdown, nil
}

// fail maps typed failures onto status codes and renders the error body.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalid), errors.Is(err, repository.ErrBadReference):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateID), errors.Is(err, repository.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, store.ErrLockTimeout):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
