// Package seed loads the sample teams and members used for local runs.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	memberRepository "github.com/festy23/member_search/internal/member/repository"
	teamRepository "github.com/festy23/member_search/internal/team/repository"
)

type sampleMember struct {
	username string
	age      int
	team     string
}

var sampleTeams = []string{"teamA", "teamB"}

var sampleMembers = []sampleMember{
	{username: "member1", age: 10, team: "teamA"},
	{username: "member2", age: 20, team: "teamA"},
	{username: "member3", age: 30, team: "teamB"},
	{username: "member4", age: 40, team: "teamB"},
}

// SampleData inserts the sample teams and members in one transaction.
// It does nothing if any member already exists. It reports whether data was inserted.
func SampleData(ctx context.Context, db *gorm.DB, logger *zap.SugaredLogger) (bool, error) {
	count, err := memberRepository.New(db, logger).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count members: %w", err)
	}
	if count > 0 {
		logger.Infow("sample data skipped", "existing_members", count)
		return false, nil
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teams := teamRepository.New(tx, logger)
		members := memberRepository.New(tx, logger)

		teamIDs := make(map[string]uint64, len(sampleTeams))
		for _, name := range sampleTeams {
			team, err := teams.Create(ctx, name)
			if err != nil {
				return fmt.Errorf("failed to create team %q: %w", name, err)
			}
			teamIDs[name] = team.TeamID
		}

		for _, m := range sampleMembers {
			teamID := teamIDs[m.team]
			if _, err := members.Create(ctx, m.username, m.age, &teamID); err != nil {
				return fmt.Errorf("failed to create member %q: %w", m.username, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Infow("sample data inserted", "teams", len(sampleTeams), "members", len(sampleMembers))
	return true, nil
}
