// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	memberModel "github.com/festy23/member_search/internal/member/model"
	teamModel "github.com/festy23/member_search/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create creates a new team.
	Create(ctx context.Context, name string) (*teamModel.Team, error)

	// GetByName finds team by name.
	GetByName(ctx context.Context, name string) (*teamModel.Team, error)

	// ListMembers returns all members belonging to the team.
	ListMembers(ctx context.Context, teamID uint64) ([]memberModel.Member, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, name string) (*teamModel.Team, error) {
	r.logger.Debugw("Create called", "team_name", name)

	if strings.TrimSpace(name) == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	team := &teamModel.Team{Name: name}
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if isDuplicateError(err) {
			r.logger.Debugw("Create team already exists", "team_name", name)
			return nil, teamModel.ErrTeamExists
		}
		r.logger.Errorw("Create database error", "team_name", name, "error", err)
		return nil, err
	}

	r.logger.Debugw("Create completed", "team_id", team.TeamID)
	return team, nil
}

// isDuplicateError reports a unique constraint violation, translated or raw.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByName finds team by name.
func (r *repository) GetByName(ctx context.Context, name string) (*teamModel.Team, error) {
	r.logger.Debugw("GetByName called", "team_name", name)

	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByName team not found", "team_name", name)
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByName database error", "team_name", name, "error", err)
		return nil, err
	}

	return &team, nil
}

// ListMembers returns all members belonging to the team, ordered by member_id.
func (r *repository) ListMembers(ctx context.Context, teamID uint64) ([]memberModel.Member, error) {
	r.logger.Debugw("ListMembers called", "team_id", teamID)

	var members []memberModel.Member
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("member_id ASC").
		Find(&members).Error

	if err != nil {
		r.logger.Errorw("ListMembers database error", "team_id", teamID, "error", err)
		return nil, err
	}

	if members == nil {
		return []memberModel.Member{}, nil
	}

	r.logger.Debugw("ListMembers completed", "team_id", teamID, "count", len(members))
	return members, nil
}
