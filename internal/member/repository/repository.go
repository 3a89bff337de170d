// Package repository provides data access layer for member module.
package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/member_search/internal/member/model"
	"github.com/festy23/member_search/internal/member/query"
	teamModel "github.com/festy23/member_search/internal/team/model"
)

// Repository defines the interface for member data access operations.
type Repository interface {
	// Search returns members joined with their team that match cond.
	// Order is unspecified.
	Search(ctx context.Context, cond model.SearchCondition) ([]model.MemberTeamDto, error)

	// Create creates a new member, optionally assigned to a team.
	Create(ctx context.Context, username string, age int, teamID *uint64) (*model.Member, error)

	// Count returns the total number of members.
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new member repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// memberTeamRow is one row of the member/team outer join.
type memberTeamRow struct {
	MemberID uint64
	Username string
	Age      int
	TeamID   *uint64
	TeamName *string
}

func (row memberTeamRow) project() model.MemberTeamDto {
	member := model.Member{
		MemberID: row.MemberID,
		Username: row.Username,
		Age:      row.Age,
		TeamID:   row.TeamID,
	}

	var team *teamModel.Team
	if row.TeamID != nil {
		team = &teamModel.Team{TeamID: *row.TeamID}
		if row.TeamName != nil {
			team.Name = *row.TeamName
		}
	}

	return model.NewMemberTeamDto(member, team)
}

// Search returns members joined with their team that match cond.
// Storage errors are returned unmodified.
func (r *repository) Search(ctx context.Context, cond model.SearchCondition) ([]model.MemberTeamDto, error) {
	r.logger.Debugw("Search called", "filters", cond.FilterCount())

	sql, args, err := query.SearchSQL(cond)
	if err != nil {
		r.logger.Errorw("Search query build error", "error", err)
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	var rows []memberTeamRow
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		r.logger.Errorw("Search database error", "error", err)
		return nil, err
	}

	result := make([]model.MemberTeamDto, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.project())
	}

	r.logger.Debugw("Search completed", "count", len(result))
	return result, nil
}

// Create creates a new member, optionally assigned to a team.
func (r *repository) Create(ctx context.Context, username string, age int, teamID *uint64) (*model.Member, error) {
	r.logger.Debugw("Create called", "username", username, "age", age, "team_id", teamID)

	if strings.TrimSpace(username) == "" {
		return nil, model.ErrInvalidUsername
	}
	if age < 0 {
		return nil, model.ErrInvalidAge
	}

	member := &model.Member{
		Username: username,
		Age:      age,
		TeamID:   teamID,
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		r.logger.Errorw("Create database error", "username", username, "error", err)
		return nil, err
	}

	r.logger.Debugw("Create completed", "member_id", member.MemberID)
	return member, nil
}

// Count returns the total number of members.
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&count).Error; err != nil {
		r.logger.Errorw("Count database error", "error", err)
		return 0, err
	}
	return count, nil
}
