package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"performanceEvaluation/internal/auth"
	"performanceEvaluation/models"
)

const principalKey = "principal"

// requireAuth validates the Bearer token and stores the Principal in the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := auth.ParseBearer(c.GetHeader("Authorization"), s.cfg.Auth.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "auth error: " + err.Error()})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// principal returns the authenticated caller. Routes behind requireAuth
// always have one.
func principal(c *gin.Context) *auth.Principal {
	p, _ := c.MustGet(principalKey).(*auth.Principal)
	return p
}

// requireRole gates a route to callers whose token carries one of the roles.
func (s *Server) requireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principal(c)
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// requireAdmin verifies the token role AND that the backing user record is
// still an active admin. This prevents a stale or spoofed token from
// reaching admin routes after a demotion.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principal(c)
		if p.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only admin can perform this action"})
			return
		}
		u, err := s.users.GetByID(c.Request.Context(), p.UserID)
		if err != nil || u.Role != models.RoleAdmin || !u.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only admin can perform this action"})
			return
		}
		c.Next()
	}
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
