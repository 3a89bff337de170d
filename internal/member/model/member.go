package model

import (
	"time"

	"gorm.io/gorm"

	teamModel "github.com/festy23/member_search/internal/team/model"
)

// Member represents a member entity in the system.
// Matches the members table schema. TeamID is nil for members without a team.
type Member struct {
	MemberID  uint64          `gorm:"primaryKey;column:member_id;autoIncrement"                          json:"memberId"`
	Username  string          `gorm:"column:username;type:varchar(255);not null;index:idx_members_username" json:"username"`
	Age       int             `gorm:"column:age;not null;index:idx_members_age"                          json:"age"`
	TeamID    *uint64         `gorm:"column:team_id;index:idx_members_team_id"                           json:"teamId"`
	Team      *teamModel.Team `gorm:"foreignKey:TeamID;references:TeamID;constraint:OnDelete:SET NULL"   json:"-"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;autoCreateTime"                          json:"-"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null;autoUpdateTime"                          json:"-"`
}

// TableName specifies the table name for GORM.
func (Member) TableName() string {
	return "members"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (m *Member) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return nil
}
