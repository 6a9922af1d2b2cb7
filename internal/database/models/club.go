package models

import (
	"github.com/google/uuid"
)

// Club is a student club of one college. Events are linked through EventClubMapping.
type Club struct {
	BaseModel
	Name        string  `json:"name" gorm:"not null;size:200"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	CollegeName string  `json:"college_name" gorm:"not null;size:200;index"`
	CreatedBy   string  `json:"created_by" gorm:"not null;size:64;index"`

	// Events is filled by the service from the mapping table
	Events []Event `json:"events,omitempty" gorm:"-"`
}

// TableName returns the table name for Club
func (Club) TableName() string {
	return "clubs"
}

// EventClubMapping links a club to an event it runs. Each pair is stored once.
type EventClubMapping struct {
	ClubID  uuid.UUID `json:"club_id" gorm:"type:uuid;primaryKey"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;primaryKey;index"`

	// Relationships
	Club  *Club  `json:"-" gorm:"foreignKey:ClubID;constraint:OnDelete:CASCADE"`
	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for EventClubMapping
func (EventClubMapping) TableName() string {
	return "event_club_mappings"
}
