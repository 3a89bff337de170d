// Package query builds the member search statement from a SearchCondition.
//
// Each optional condition field maps to at most one predicate. Absent fields
// contribute nothing, so an empty condition renders no WHERE clause at all.
package query

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/festy23/member_search/internal/member/model"
)

const (
	membersAlias = "m"
	teamsAlias   = "t"

	colMemberID = "m.member_id"
	colUsername = "m.username"
	colAge      = "m.age"
	colTeamRef  = "m.team_id"
	colTeamID   = "t.team_id"
	colTeamName = "t.name"

	// AliasTeamID and AliasTeamName name the joined team columns in the result set.
	AliasTeamID   = "team_id"
	AliasTeamName = "team_name"
)

// UsernameEq returns m.username = username when username is set.
func UsernameEq(username *string) (exp.Expression, bool) {
	if username == nil {
		return nil, false
	}
	return goqu.I(colUsername).Eq(*username), true
}

// TeamNameEq returns t.name = teamName when teamName is set.
func TeamNameEq(teamName *string) (exp.Expression, bool) {
	if teamName == nil {
		return nil, false
	}
	return goqu.I(colTeamName).Eq(*teamName), true
}

// AgeGoe returns m.age >= bound when bound is set.
func AgeGoe(bound *int) (exp.Expression, bool) {
	if bound == nil {
		return nil, false
	}
	return goqu.I(colAge).Gte(*bound), true
}

// AgeLoe returns m.age <= bound when bound is set.
func AgeLoe(bound *int) (exp.Expression, bool) {
	if bound == nil {
		return nil, false
	}
	return goqu.I(colAge).Lte(*bound), true
}

// Predicates returns the active predicates of cond in field order:
// username, team name, lower age bound, upper age bound.
func Predicates(cond model.SearchCondition) []exp.Expression {
	candidates := []func() (exp.Expression, bool){
		func() (exp.Expression, bool) { return UsernameEq(cond.Username) },
		func() (exp.Expression, bool) { return TeamNameEq(cond.TeamName) },
		func() (exp.Expression, bool) { return AgeGoe(cond.AgeGoe) },
		func() (exp.Expression, bool) { return AgeLoe(cond.AgeLoe) },
	}

	predicates := make([]exp.Expression, 0, len(candidates))
	for _, candidate := range candidates {
		if predicate, ok := candidate(); ok {
			predicates = append(predicates, predicate)
		}
	}
	return predicates
}

// Where folds the predicates of cond into a conjunction.
// It reports false when cond has no active field, meaning match all.
func Where(cond model.SearchCondition) (exp.ExpressionList, bool) {
	predicates := Predicates(cond)
	if len(predicates) == 0 {
		return nil, false
	}
	return goqu.And(predicates...), true
}

// Search returns the SELECT of members left-joined to their team, filtered by cond.
// Members without a team yield NULL team columns. Row order is unspecified.
func Search(cond model.SearchCondition) *goqu.SelectDataset {
	stmt := goqu.From(goqu.T("members").As(membersAlias)).
		LeftJoin(
			goqu.T("teams").As(teamsAlias),
			goqu.On(goqu.I(colTeamRef).Eq(goqu.I(colTeamID))),
		).
		Select(
			goqu.I(colMemberID),
			goqu.I(colUsername),
			goqu.I(colAge),
			goqu.I(colTeamID).As(AliasTeamID),
			goqu.I(colTeamName).As(AliasTeamName),
		)

	if where, ok := Where(cond); ok {
		stmt = stmt.Where(where)
	}
	return stmt
}

// SearchSQL renders Search(cond) with '?' placeholders and its arguments.
func SearchSQL(cond model.SearchCondition) (string, []interface{}, error) {
	return Search(cond).Prepared(true).ToSQL()
}
