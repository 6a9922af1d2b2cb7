package models

import (
	"github.com/google/uuid"
)

// Offer is a recruitment call or announcement aimed at a target group.
// TargetEventID is set when the offer concerns one event, and cleared if that event is deleted.
type Offer struct {
	BaseModel
	Title             string      `json:"title" gorm:"not null;size:200"`
	Description       string      `json:"description" gorm:"type:text;not null"`
	CreatedBy         string      `json:"created_by" gorm:"not null;size:64;index"`
	TargetEventID     *uuid.UUID  `json:"target_event_id,omitempty" gorm:"type:uuid;index"`
	TargetGroupType   TargetGroup `json:"target_group_type" gorm:"type:varchar(30);not null;default:'ALL'"`
	TargetCollegeName *string     `json:"target_college_name,omitempty" gorm:"size:200"`
	OfferType         OfferType   `json:"offer_type" gorm:"type:varchar(30);not null"`

	// Relationships
	TargetEvent *Event `json:"target_event,omitempty" gorm:"foreignKey:TargetEventID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for Offer
func (Offer) TableName() string {
	return "offers"
}
