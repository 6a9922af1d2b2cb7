package models

import "time"

// User is the local profile of an identity managed by the external auth provider.
// ID is the provider's subject, so it is assigned by the caller rather than generated.
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:64"`
	Email         string    `json:"email" gorm:"uniqueIndex:idx_users_email;not null;size:255" validate:"required,email,max=255"`
	Name          string    `json:"name" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	CollegeName   string    `json:"college_name" gorm:"not null;size:200" validate:"required,min=2,max=200"`
	Course        string    `json:"course" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Year          int       `json:"year" gorm:"not null" validate:"required,min=1,max=5"`
	ProfilePicURL *string   `json:"profile_pic_url,omitempty" gorm:"size:500"`
	Bio           *string   `json:"bio,omitempty" gorm:"size:200"`
	PhoneNumber   *string   `json:"phone_number,omitempty" gorm:"size:20"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
