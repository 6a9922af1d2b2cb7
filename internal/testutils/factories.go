package testutils

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
)

var sequence atomic.Int64

func next() int64 {
	return sequence.Add(1)
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with a unique identity and email
func (f *UserFactory) Create() *models.User {
	n := next()
	return &models.User{
		ID:          fmt.Sprintf("user_%d", n),
		Email:       fmt.Sprintf("student%d@college.edu", n),
		Name:        fmt.Sprintf("Student %d", n),
		CollegeName: "Institute of Engineering",
		Course:      "B.Tech CSE",
		Year:        2,
	}
}

// WithEmail creates a test User with a custom email
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// EventFactory provides methods to create test Event data
type EventFactory struct{}

// NewEventFactory creates a new EventFactory
func NewEventFactory() *EventFactory {
	return &EventFactory{}
}

// Create creates an upcoming test Event one week from now
func (f *EventFactory) Create() *models.Event {
	date := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	return &models.Event{
		BaseModel:       models.BaseModel{ID: uuid.New()},
		Title:           fmt.Sprintf("Hackathon %d", next()),
		Description:     "A test event",
		Date:            date,
		StartTime:       date.Add(9 * time.Hour),
		EndTime:         date.Add(18 * time.Hour),
		Venue:           "Main Auditorium",
		EventStatus:     models.EventStatusUpcoming,
		Visibility:      models.VisibilityPublic,
		Category:        models.CategoryHackathon,
		OrganiserUserID: "organiser",
	}
}

// WithMaxTeamSize creates a test Event with a team size ceiling
func (f *EventFactory) WithMaxTeamSize(size int) *models.Event {
	event := f.Create()
	event.MaxTeamSize = &size
	return event
}

// TeamFactory provides methods to create test Team data
type TeamFactory struct{}

// NewTeamFactory creates a new TeamFactory
func NewTeamFactory() *TeamFactory {
	return &TeamFactory{}
}

// Create creates a test Team for event led by leaderID
func (f *TeamFactory) Create(eventID uuid.UUID, leaderID string, maxMembers int) *models.Team {
	return &models.Team{
		BaseModel:  models.BaseModel{ID: uuid.New()},
		TeamName:   fmt.Sprintf("Team %d", next()),
		EventID:    eventID,
		CreatedBy:  leaderID,
		MaxMembers: maxMembers,
	}
}

// ParticipationFactory provides methods to create test EventParticipation data
type ParticipationFactory struct{}

// NewParticipationFactory creates a new ParticipationFactory
func NewParticipationFactory() *ParticipationFactory {
	return &ParticipationFactory{}
}

// Individual creates a registration without a team
func (f *ParticipationFactory) Individual(userID string, eventID uuid.UUID) *models.EventParticipation {
	return &models.EventParticipation{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    userID,
		EventID:   eventID,
	}
}

// Member creates a registration belonging to team
func (f *ParticipationFactory) Member(userID string, team *models.Team) *models.EventParticipation {
	teamID := team.ID
	return &models.EventParticipation{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		UserID:       userID,
		EventID:      team.EventID,
		TeamID:       &teamID,
		IsTeamLeader: userID == team.CreatedBy,
	}
}

// FactorySet provides access to all factories
type FactorySet struct {
	User          *UserFactory
	Event         *EventFactory
	Team          *TeamFactory
	Participation *ParticipationFactory
}

// NewFactorySet creates a new FactorySet with all factories
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:          NewUserFactory(),
		Event:         NewEventFactory(),
		Team:          NewTeamFactory(),
		Participation: NewParticipationFactory(),
	}
}
