package model

import (
	teamModel "github.com/festy23/member_search/internal/team/model"
)

// SearchCondition holds the optional filters of a member search.
// A nil field imposes no constraint.
type SearchCondition struct {
	Username *string
	TeamName *string
	AgeGoe   *int
	AgeLoe   *int
}

// FilterCount returns the number of fields that are set.
func (c SearchCondition) FilterCount() int {
	n := 0
	if c.Username != nil {
		n++
	}
	if c.TeamName != nil {
		n++
	}
	if c.AgeGoe != nil {
		n++
	}
	if c.AgeLoe != nil {
		n++
	}
	return n
}

// MemberTeamDto is a member joined with its team.
// Team fields are null for members without a team.
type MemberTeamDto struct {
	MemberID uint64  `json:"memberId"`
	Username string  `json:"username"`
	Age      int     `json:"age"`
	TeamID   *uint64 `json:"teamId"`
	TeamName *string `json:"teamName"`
}

// NewMemberTeamDto projects a member and its optional team into a MemberTeamDto.
func NewMemberTeamDto(member Member, team *teamModel.Team) MemberTeamDto {
	dto := MemberTeamDto{
		MemberID: member.MemberID,
		Username: member.Username,
		Age:      member.Age,
	}
	if team != nil {
		teamID := team.TeamID
		teamName := team.Name
		dto.TeamID = &teamID
		dto.TeamName = &teamName
	}
	return dto
}
