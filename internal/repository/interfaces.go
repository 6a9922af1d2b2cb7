package repository

import (
	"context"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user profile repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmails(ctx context.Context, emails []string, caseSensitive bool) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// EventRepositoryInterface defines the interface for event repository operations
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	GetByOrganiser(ctx context.Context, organiserID string) ([]models.Event, error)
	// FindOpenByTitles matches titles case-insensitively against events that are upcoming or ongoing
	FindOpenByTitles(ctx context.Context, titles []string) ([]models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamRepositoryInterface defines the interface for team repository operations
type TeamRepositoryInterface interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	// GetByIDForUpdate reads the team and holds a row lock until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// ParticipationRepositoryInterface defines the interface for event participation repository operations
type ParticipationRepositoryInterface interface {
	// CreateSkipDuplicates inserts the rows, silently skipping any (user, event) pair that already exists.
	// It returns the number of rows actually inserted.
	CreateSkipDuplicates(ctx context.Context, participations []models.EventParticipation) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.EventParticipation, error)
	GetByUserAndEvent(ctx context.Context, userID string, eventID uuid.UUID) (*models.EventParticipation, error)
	GetByUserID(ctx context.Context, userID string) ([]models.EventParticipation, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]models.EventParticipation, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.EventParticipation, error)
	CountByTeamID(ctx context.Context, teamID uuid.UUID) (int64, error)
	UpdateLeaderFlag(ctx context.Context, id uuid.UUID, isLeader bool) error
	// DetachTeam clears team_id on every participation of the team and returns how many rows changed
	DetachTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// Audience describes the reader of an offer or result feed.
// EventIDs are the events the reader is registered for.
type Audience struct {
	UserID      string
	CollegeName string
	EventIDs    []uuid.UUID
}

// OfferRepositoryInterface defines the interface for offer repository operations
type OfferRepositoryInterface interface {
	Create(ctx context.Context, offer *models.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	GetByCreator(ctx context.Context, userID string) ([]models.Offer, error)
	// ListForAudience returns the offers addressed to the audience, newest first
	ListForAudience(ctx context.Context, audience Audience) ([]models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClubRepositoryInterface defines the interface for club repository operations
type ClubRepositoryInterface interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
	// List returns clubs ordered by name. An empty college matches every club.
	List(ctx context.Context, collegeName string) ([]models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id uuid.UUID) error
	// LinkEvents maps the club to each event, skipping pairs that already exist.
	// It returns the number of new links.
	LinkEvents(ctx context.Context, clubID uuid.UUID, eventIDs []uuid.UUID) (int64, error)
	GetEvents(ctx context.Context, clubID uuid.UUID) ([]models.Event, error)
}

// ResultRepositoryInterface defines the interface for result repository operations
type ResultRepositoryInterface interface {
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Result, error)
	// GetByEventForAudience returns the event's results the audience may read, newest first
	GetByEventForAudience(ctx context.Context, eventID uuid.UUID, audience Audience) ([]models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories groups the repositories that share one database handle or transaction
type Repositories struct {
	Users          UserRepositoryInterface
	Events         EventRepositoryInterface
	Teams          TeamRepositoryInterface
	Participations ParticipationRepositoryInterface
	Offers         OfferRepositoryInterface
	Clubs          ClubRepositoryInterface
	Results        ResultRepositoryInterface
}

// TransactorInterface runs fn inside a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TransactorInterface interface {
	Transaction(ctx context.Context, fn func(repos Repositories) error) error
}
