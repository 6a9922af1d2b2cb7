package models

import (
	"github.com/google/uuid"
)

// Team is a registered group for one event, owned by its leader (CreatedBy).
// MaxMembers of zero means the team has no size limit.
type Team struct {
	BaseModel
	TeamName   string    `json:"team_name" gorm:"not null;size:100"`
	EventID    uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index"`
	CreatedBy  string    `json:"created_by" gorm:"not null;size:64"`
	MaxMembers int       `json:"max_members" gorm:"not null;default:0"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// Admits reports whether the team can hold count members
func (t *Team) Admits(count int) bool {
	return t.MaxMembers <= 0 || count <= t.MaxMembers
}
