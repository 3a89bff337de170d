// Package handler provides HTTP handlers for member endpoints.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/festy23/member_search/internal/member/model"
	"github.com/festy23/member_search/internal/member/service"
)

// Query parameters of GET /v1/members.
const (
	paramUsername = "username"
	paramTeamName = "teamName"
	paramAgeGoe   = "ageGoe"
	paramAgeLoe   = "ageLoe"
)

// Handler handles HTTP requests for member endpoints.
type Handler struct {
	service service.Service
}

// New creates a new member handler instance.
func New(svc service.Service) *Handler {
	return &Handler{service: svc}
}

// SearchMembers handles GET /v1/members request.
// Empty parameters are treated as absent.
// @Summary Search members with their team
// @Tags Members
// @Produce json
// @Param username query string false "Exact username"
// @Param teamName query string false "Exact team name"
// @Param ageGoe query int false "Minimum age, inclusive"
// @Param ageLoe query int false "Maximum age, inclusive"
// @Success 200 {array} model.MemberTeamDto
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /v1/members [get].
func (h *Handler) SearchMembers(c *gin.Context) {
	cond, err := parseSearchCondition(c)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Search(c.Request.Context(), cond)
	if err != nil {
		_ = c.Error(err)
		errorResponse(c, "SERVICE_UNAVAILABLE", "member search is temporarily unavailable", http.StatusServiceUnavailable)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseSearchCondition(c *gin.Context) (model.SearchCondition, error) {
	var cond model.SearchCondition

	cond.Username = stringParam(c, paramUsername)
	cond.TeamName = stringParam(c, paramTeamName)

	ageGoe, err := intParam(c, paramAgeGoe)
	if err != nil {
		return cond, err
	}
	cond.AgeGoe = ageGoe

	ageLoe, err := intParam(c, paramAgeLoe)
	if err != nil {
		return cond, err
	}
	cond.AgeLoe = ageLoe

	return cond, nil
}

func stringParam(c *gin.Context, name string) *string {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return nil
	}
	return &value
}

func intParam(c *gin.Context, name string) (*int, error) {
	raw := stringParam(c, name)
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &value, nil
}
