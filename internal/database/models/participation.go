package models

import (
	"github.com/google/uuid"
)

// EventParticipation is one user's registration for one event.
// At most one row exists per (user, event).
type EventParticipation struct {
	BaseModel
	UserID       string     `json:"user_id" gorm:"not null;size:64;uniqueIndex:idx_participation_user_event"`
	EventID      uuid.UUID  `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_participation_user_event;index"`
	TeamID       *uuid.UUID `json:"team_id,omitempty" gorm:"type:uuid;index"`
	IsTeamLeader bool       `json:"is_team_leader" gorm:"not null;default:false"`

	// Relationships
	Team  *Team  `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for EventParticipation
func (EventParticipation) TableName() string {
	return "event_participations"
}
