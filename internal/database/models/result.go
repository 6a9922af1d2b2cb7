package models

import (
	"github.com/google/uuid"
)

// Result is an announcement of an event's outcome
type Result struct {
	BaseModel
	ResultText  string      `json:"result_text" gorm:"type:text;not null"`
	AnnouncedBy string      `json:"announced_by" gorm:"not null;size:64;index"`
	EventID     uuid.UUID   `json:"event_id" gorm:"type:uuid;not null;index"`
	VisibleTo   TargetGroup `json:"visible_to" gorm:"type:varchar(30);not null;default:'ALL'"`
	MediaURL    *string     `json:"media_url,omitempty" gorm:"size:500"`

	// Relationships
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Result
func (Result) TableName() string {
	return "results"
}
