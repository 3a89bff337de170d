// Package router provides member module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/member_search/internal/member/handler"
	"github.com/festy23/member_search/internal/member/repository"
	"github.com/festy23/member_search/internal/member/service"
	"github.com/festy23/member_search/internal/metrics"
)

// RegisterRoutes registers member module routes under /v1.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, recorder metrics.SearchRecorder, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, recorder, logger)
	h := handler.New(svc)

	v1 := r.Group("/v1")
	v1.GET("/members", h.SearchMembers)
}
