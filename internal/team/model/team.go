package model

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a team entity in the system.
// Matches the teams table schema.
type Team struct {
	TeamID    uint64    `gorm:"primaryKey;column:team_id;autoIncrement"                          json:"teamId"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_teams_name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"                        json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"                        json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
