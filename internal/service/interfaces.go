package service

import (
	"context"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// ParticipationServiceInterface defines the interface for participation service
type ParticipationServiceInterface interface {
	Register(ctx context.Context, callerID string, req *RegisterParticipationRequest) (*RegistrationResult, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, req *UpdateParticipationRequest) (*models.EventParticipation, error)
	Withdraw(ctx context.Context, callerID string, id uuid.UUID) (*WithdrawalResult, error)
	ListMine(ctx context.Context, callerID string) ([]models.EventParticipation, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventParticipation, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*TeamDetail, error)
}

// UserServiceInterface defines the interface for user profile service
type UserServiceInterface interface {
	CreateProfile(ctx context.Context, callerID string, req *CreateUserRequest) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, callerID string, req *UpdateUserRequest) (*models.User, error)
	DeleteProfile(ctx context.Context, callerID string) error
}

// EventServiceInterface defines the interface for event service
type EventServiceInterface interface {
	Create(ctx context.Context, callerID string, req *EventRequest) (*models.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListMine(ctx context.Context, callerID string) ([]models.Event, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, req *EventRequest) (*models.Event, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) error
}

// OfferServiceInterface defines the interface for offer service
type OfferServiceInterface interface {
	Create(ctx context.Context, callerID string, req *OfferRequest) (*models.Offer, error)
	Get(ctx context.Context, callerID string, id uuid.UUID) (*models.Offer, error)
	ListMine(ctx context.Context, callerID string) ([]models.Offer, error)
	Feed(ctx context.Context, callerID string) ([]models.Offer, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, req *OfferRequest) (*models.Offer, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) error
}

// ClubServiceInterface defines the interface for club service
type ClubServiceInterface interface {
	Create(ctx context.Context, callerID string, req *ClubRequest) (*models.Club, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Club, error)
	List(ctx context.Context, collegeName string) ([]models.Club, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, req *ClubRequest) (*models.Club, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) error
}

// ResultServiceInterface defines the interface for result service
type ResultServiceInterface interface {
	Create(ctx context.Context, callerID string, req *ResultRequest) (*models.Result, error)
	Get(ctx context.Context, callerID string, id uuid.UUID) (*models.Result, error)
	ListByEvent(ctx context.Context, callerID string, eventID uuid.UUID) ([]models.Result, error)
	Update(ctx context.Context, callerID string, id uuid.UUID, req *ResultRequest) (*models.Result, error)
	Delete(ctx context.Context, callerID string, id uuid.UUID) error
}

var (
	_ ParticipationServiceInterface = (*ParticipationService)(nil)
	_ UserServiceInterface          = (*UserService)(nil)
	_ EventServiceInterface         = (*EventService)(nil)
	_ OfferServiceInterface         = (*OfferService)(nil)
	_ ClubServiceInterface          = (*ClubService)(nil)
	_ ResultServiceInterface        = (*ResultService)(nil)
)
