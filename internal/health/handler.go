// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/member_search/internal/database/database"
)

const defaultCheckTimeout = 5 * time.Second

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Handler handles health check requests.
type Handler struct {
	check   CheckFunc
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// New creates a health handler that pings db.
func New(db *gorm.DB, logger *zap.SugaredLogger) *Handler {
	return NewWithCheck(func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	}, logger)
}

// NewWithCheck creates a health handler around an arbitrary check.
func NewWithCheck(check CheckFunc, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		check:   check,
		timeout: defaultCheckTimeout,
		logger:  logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string `json:"status"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.check(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{Status: "unhealthy"})
		return
	}

	c.JSON(http.StatusOK, Response{Status: "ok"})
}
