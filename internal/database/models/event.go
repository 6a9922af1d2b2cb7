package models

import "time"

// Event is an organised college event that users register for
type Event struct {
	BaseModel
	Title                string        `json:"title" gorm:"not null;size:200"`
	Description          string        `json:"description" gorm:"type:text;not null"`
	Date                 time.Time     `json:"date" gorm:"not null"`
	StartTime            time.Time     `json:"start_time" gorm:"not null"`
	EndTime              time.Time     `json:"end_time" gorm:"not null"`
	Venue                string        `json:"venue" gorm:"not null;size:200"`
	OrganisingCommittee  *string       `json:"organising_committee,omitempty" gorm:"size:200"`
	EntryFee             *float64      `json:"entry_fee,omitempty" gorm:"type:numeric(10,2)"`
	RegistrationLink     *string       `json:"registration_link,omitempty" gorm:"size:500"`
	UseCustomForm        bool          `json:"use_custom_form" gorm:"not null;default:false"`
	PosterURL            *string       `json:"poster_url,omitempty" gorm:"size:500"`
	MaxTeamSize          *int          `json:"max_team_size,omitempty"`
	RegistrationDeadline *time.Time    `json:"registration_deadline,omitempty"`
	EventStatus          EventStatus   `json:"event_status" gorm:"type:varchar(20);not null;default:'UPCOMING'"`
	Visibility           Visibility    `json:"visibility" gorm:"type:varchar(20);not null;default:'PUBLIC'"`
	Category             EventCategory `json:"category" gorm:"type:varchar(30);not null"`
	OrganiserUserID      string        `json:"organiser_user_id" gorm:"not null;size:64;index"`
}

// TableName returns the table name for Event
func (Event) TableName() string {
	return "events"
}

// RegistrationOpen reports whether registrations are still accepted at now
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.EventStatus == EventStatusCompleted {
		return false
	}
	return e.RegistrationDeadline == nil || !now.After(*e.RegistrationDeadline)
}
