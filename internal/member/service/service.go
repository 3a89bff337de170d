// Package service provides business logic layer for member module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/member_search/internal/member/model"
	"github.com/festy23/member_search/internal/member/repository"
	"github.com/festy23/member_search/internal/metrics"
)

// Service defines the interface for member business logic operations.
type Service interface {
	// Search returns members joined with their team that match cond.
	Search(ctx context.Context, cond model.SearchCondition) ([]model.MemberTeamDto, error)
}

type service struct {
	repo     repository.Repository
	recorder metrics.SearchRecorder
	logger   *zap.SugaredLogger
}

// New creates a new member service instance.
func New(repo repository.Repository, recorder metrics.SearchRecorder, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, recorder: recorder, logger: logger}
}

// Search returns members joined with their team that match cond.
// Storage errors are passed through unchanged.
func (s *service) Search(ctx context.Context, cond model.SearchCondition) ([]model.MemberTeamDto, error) {
	filters := cond.FilterCount()
	s.logger.Debugw("Search called",
		"username", cond.Username,
		"team_name", cond.TeamName,
		"age_goe", cond.AgeGoe,
		"age_loe", cond.AgeLoe,
	)

	result, err := s.repo.Search(ctx, cond)
	if err != nil {
		s.logger.Errorw("Search failed", "filters", filters, "error", err)
		s.recorder.RecordSearch(metrics.OutcomeError, filters, 0)
		return nil, err
	}

	s.recorder.RecordSearch(metrics.OutcomeSuccess, filters, len(result))
	s.logger.Infow("Search completed", "filters", filters, "count", len(result))
	return result, nil
}
