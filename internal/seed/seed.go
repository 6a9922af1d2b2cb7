package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// UserData describes one seeded profile. ID is the identity provider subject.
type UserData struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	CollegeName string `yaml:"college_name"`
	Course      string `yaml:"course"`
	Year        int    `yaml:"year"`
	PhoneNumber string `yaml:"phone_number,omitempty"`
	Bio         string `yaml:"bio,omitempty"`
}

// TeamData describes a team and its members. The leader is always a member.
type TeamData struct {
	ID         uuid.UUID `yaml:"id"`
	Name       string    `yaml:"name"`
	Leader     string    `yaml:"leader"`
	MaxMembers int       `yaml:"max_members"`
	Members    []string  `yaml:"members,omitempty"`
}

// EventData describes an event, its teams and its individual registrations
type EventData struct {
	ID                   uuid.UUID  `yaml:"id"`
	Title                string     `yaml:"title"`
	Description          string     `yaml:"description"`
	Date                 time.Time  `yaml:"date"`
	StartTime            time.Time  `yaml:"start_time"`
	EndTime              time.Time  `yaml:"end_time"`
	Venue                string     `yaml:"venue"`
	Category             string     `yaml:"category"`
	Visibility           string     `yaml:"visibility,omitempty"`
	Organiser            string     `yaml:"organiser"`
	MaxTeamSize          *int       `yaml:"max_team_size,omitempty"`
	RegistrationDeadline *time.Time `yaml:"registration_deadline,omitempty"`
	Teams                []TeamData `yaml:"teams,omitempty"`
	Individuals          []string   `yaml:"individuals,omitempty"`
}

// ClubData describes a club and the seeded events it runs
type ClubData struct {
	ID          uuid.UUID   `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	CollegeName string      `yaml:"college_name"`
	CreatedBy   string      `yaml:"created_by"`
	Events      []uuid.UUID `yaml:"events,omitempty"`
}

// Fixture is the root of a seed file
type Fixture struct {
	Users  []UserData  `yaml:"users"`
	Events []EventData `yaml:"events"`
	Clubs  []ClubData  `yaml:"clubs,omitempty"`
}

// Summary counts what a seed run inserted
type Summary struct {
	Users          int
	Events         int
	Teams          int
	Participations int64
	Clubs          int
	ClubLinks      int64
}

// LoadFile reads and parses a YAML fixture
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML fixture and checks its references
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := fixture.validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

func (f *Fixture) validate() error {
	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if strings.TrimSpace(u.ID) == "" {
			return fmt.Errorf("user %q has no id", u.Email)
		}
		users[u.ID] = true
	}
	known := func(id string) bool { return users[id] }

	events := make(map[uuid.UUID]bool, len(f.Events))
	for _, e := range f.Events {
		events[e.ID] = true
		if e.ID == uuid.Nil {
			return fmt.Errorf("event %q has no id", e.Title)
		}
		if !models.EventCategory(e.Category).IsValid() {
			return fmt.Errorf("event %q has unknown category %q", e.Title, e.Category)
		}
		if !known(e.Organiser) {
			return fmt.Errorf("event %q references unknown organiser %q", e.Title, e.Organiser)
		}
		for _, t := range e.Teams {
			if t.ID == uuid.Nil {
				return fmt.Errorf("team %q has no id", t.Name)
			}
			if !known(t.Leader) {
				return fmt.Errorf("team %q references unknown leader %q", t.Name, t.Leader)
			}
			for _, m := range t.Members {
				if !known(m) {
					return fmt.Errorf("team %q references unknown member %q", t.Name, m)
				}
			}
		}
		for _, id := range e.Individuals {
			if !known(id) {
				return fmt.Errorf("event %q references unknown participant %q", e.Title, id)
			}
		}
	}

	for _, c := range f.Clubs {
		if c.ID == uuid.Nil {
			return fmt.Errorf("club %q has no id", c.Name)
		}
		if !known(c.CreatedBy) {
			return fmt.Errorf("club %q references unknown creator %q", c.Name, c.CreatedBy)
		}
		for _, id := range c.Events {
			if !events[id] {
				return fmt.Errorf("club %q references unknown event %s", c.Name, id)
			}
		}
	}
	return nil
}

// members returns the leader followed by the other members, without duplicates
func (t *TeamData) members() []string {
	out := []string{t.Leader}
	seen := map[string]bool{t.Leader: true}
	for _, m := range t.Members {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// Run inserts the fixture in one transaction. Users and events that already exist are left untouched,
// so running the same fixture twice is a no-op.
func Run(ctx context.Context, tx repository.TransactorInterface, fixture *Fixture) (*Summary, error) {
	summary := &Summary{}
	err := tx.Transaction(ctx, func(repos repository.Repositories) error {
		for i := range fixture.Users {
			created, err := seedUser(ctx, repos.Users, &fixture.Users[i])
			if err != nil {
				return err
			}
			if created {
				summary.Users++
			}
		}
		for i := range fixture.Events {
			if err := seedEvent(ctx, repos, &fixture.Events[i], summary); err != nil {
				return err
			}
		}
		for i := range fixture.Clubs {
			if err := seedClub(ctx, repos.Clubs, &fixture.Clubs[i], summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"users":          summary.Users,
		"events":         summary.Events,
		"teams":          summary.Teams,
		"participations": summary.Participations,
		"clubs":          summary.Clubs,
	}).Info("Seed data loaded")
	return summary, nil
}

func seedUser(ctx context.Context, repo repository.UserRepositoryInterface, data *UserData) (bool, error) {
	if _, err := repo.GetByID(ctx, data.ID); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to look up user %s: %w", data.ID, err)
	}

	user := &models.User{
		ID:          data.ID,
		Name:        data.Name,
		Email:       strings.TrimSpace(data.Email),
		CollegeName: data.CollegeName,
		Course:      data.Course,
		Year:        data.Year,
	}
	if data.PhoneNumber != "" {
		user.PhoneNumber = &data.PhoneNumber
	}
	if data.Bio != "" {
		user.Bio = &data.Bio
	}
	if err := repo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", data.ID, err)
	}
	return true, nil
}

func seedEvent(ctx context.Context, repos repository.Repositories, data *EventData, summary *Summary) error {
	if _, err := repos.Events.GetByID(ctx, data.ID); err == nil {
		logrus.WithField("event_id", data.ID).Debug("Seed event already present, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up event %s: %w", data.ID, err)
	}

	visibility := models.Visibility(data.Visibility)
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	event := &models.Event{
		BaseModel:            models.BaseModel{ID: data.ID},
		Title:                data.Title,
		Description:          data.Description,
		Date:                 data.Date,
		StartTime:            data.StartTime,
		EndTime:              data.EndTime,
		Venue:                data.Venue,
		MaxTeamSize:          data.MaxTeamSize,
		RegistrationDeadline: data.RegistrationDeadline,
		EventStatus:          models.EventStatusUpcoming,
		Visibility:           visibility,
		Category:             models.EventCategory(data.Category),
		OrganiserUserID:      data.Organiser,
	}
	if err := repos.Events.Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create event %q: %w", data.Title, err)
	}
	summary.Events++

	var rows []models.EventParticipation
	for i := range data.Teams {
		teamData := &data.Teams[i]
		members := teamData.members()
		team := &models.Team{
			BaseModel:  models.BaseModel{ID: teamData.ID},
			TeamName:   teamData.Name,
			EventID:    event.ID,
			CreatedBy:  teamData.Leader,
			MaxMembers: teamData.MaxMembers,
		}
		if !team.Admits(len(members)) {
			return fmt.Errorf("team %q: %w", teamData.Name, apperrors.NewCapacityExceededError(team.MaxMembers, len(members)))
		}
		if err := repos.Teams.Create(ctx, team); err != nil {
			return fmt.Errorf("failed to create team %q: %w", teamData.Name, err)
		}
		summary.Teams++

		for _, userID := range members {
			teamID := team.ID
			rows = append(rows, models.EventParticipation{
				UserID:       userID,
				EventID:      event.ID,
				TeamID:       &teamID,
				IsTeamLeader: userID == teamData.Leader,
			})
		}
	}
	for _, userID := range data.Individuals {
		rows = append(rows, models.EventParticipation{UserID: userID, EventID: event.ID})
	}
	if len(rows) == 0 {
		return nil
	}

	inserted, err := repos.Participations.CreateSkipDuplicates(ctx, rows)
	if err != nil {
		return fmt.Errorf("failed to create participations for %q: %w", data.Title, err)
	}
	summary.Participations += inserted
	return nil
}

func seedClub(ctx context.Context, repo repository.ClubRepositoryInterface, data *ClubData, summary *Summary) error {
	if _, err := repo.GetByID(ctx, data.ID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up club %s: %w", data.ID, err)
	}

	club := &models.Club{
		BaseModel:   models.BaseModel{ID: data.ID},
		Name:        data.Name,
		CollegeName: data.CollegeName,
		CreatedBy:   data.CreatedBy,
	}
	if data.Description != "" {
		club.Description = &data.Description
	}
	if err := repo.Create(ctx, club); err != nil {
		return fmt.Errorf("failed to create club %q: %w", data.Name, err)
	}
	summary.Clubs++

	linked, err := repo.LinkEvents(ctx, club.ID, data.Events)
	if err != nil {
		return fmt.Errorf("failed to link events to club %q: %w", data.Name, err)
	}
	summary.ClubLinks += linked
	return nil
}
