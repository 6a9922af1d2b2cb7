package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/logger"
	"github.com/KartikTulsian/karyasetu/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventService handles business logic for events
type EventService struct {
	repo      repository.EventRepositoryInterface
	tx        repository.TransactorInterface
	validator *validator.Validate
}

// NewEventService creates a new event service
func NewEventService(repo repository.EventRepositoryInterface, tx repository.TransactorInterface, validator *validator.Validate) *EventService {
	return &EventService{
		repo:      repo,
		tx:        tx,
		validator: validator,
	}
}

// EventRequest carries every editable field of an event. It is used for both create and full update.
type EventRequest struct {
	Title                string               `json:"title" validate:"required,min=1,max=200"`
	Description          string               `json:"description" validate:"required,min=1"`
	Date                 time.Time            `json:"date" validate:"required"`
	StartTime            time.Time            `json:"start_time" validate:"required"`
	EndTime              time.Time            `json:"end_time" validate:"required,gtfield=StartTime"`
	Venue                string               `json:"venue" validate:"required,min=1,max=200"`
	OrganisingCommittee  *string              `json:"organising_committee,omitempty" validate:"omitempty,max=200"`
	EntryFee             *float64             `json:"entry_fee,omitempty" validate:"omitempty,min=0"`
	RegistrationLink     *string              `json:"registration_link,omitempty" validate:"omitempty,url,max=500"`
	UseCustomForm        bool                 `json:"use_custom_form"`
	PosterURL            *string              `json:"poster_url,omitempty" validate:"omitempty,url,max=500"`
	MaxTeamSize          *int                 `json:"max_team_size,omitempty" validate:"omitempty,min=0"`
	RegistrationDeadline *time.Time           `json:"registration_deadline,omitempty"`
	EventStatus          models.EventStatus   `json:"event_status" validate:"omitempty,oneof=UPCOMING ONGOING COMPLETED"`
	Visibility           models.Visibility    `json:"visibility" validate:"omitempty,oneof=PUBLIC COLLEGE GROUP"`
	Category             models.EventCategory `json:"category" validate:"required,oneof=TECHNICAL CULTURAL SEMINAR WORKSHOP SPORTS HACKATHON QUIZ DRAMATICS MUSIC DANCE LITERARY ART MANAGEMENT SOCIAL"`
}

func (s *EventService) validate(req *EventRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	if req.RegistrationDeadline != nil && req.RegistrationDeadline.After(req.Date) {
		return apperrors.ErrDeadlineAfterEventDate
	}
	return nil
}

// apply copies req onto event. A custom registration form replaces the external link.
func (req *EventRequest) apply(event *models.Event) {
	event.Title = strings.TrimSpace(req.Title)
	event.Description = req.Description
	event.Date = req.Date
	event.StartTime = req.StartTime
	event.EndTime = req.EndTime
	event.Venue = strings.TrimSpace(req.Venue)
	event.OrganisingCommittee = emptyToNil(req.OrganisingCommittee)
	event.EntryFee = req.EntryFee
	event.UseCustomForm = req.UseCustomForm
	event.RegistrationLink = emptyToNil(req.RegistrationLink)
	if req.UseCustomForm {
		event.RegistrationLink = nil
	}
	event.PosterURL = emptyToNil(req.PosterURL)
	event.MaxTeamSize = req.MaxTeamSize
	if event.MaxTeamSize != nil && *event.MaxTeamSize == 0 {
		event.MaxTeamSize = nil
	}
	event.RegistrationDeadline = req.RegistrationDeadline
	event.EventStatus = req.EventStatus
	if event.EventStatus == "" {
		event.EventStatus = models.EventStatusUpcoming
	}
	event.Visibility = req.Visibility
	if event.Visibility == "" {
		event.Visibility = models.VisibilityPublic
	}
	event.Category = req.Category
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// trimToNil trims s and returns nil when nothing is left
func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Create creates an event organised by the caller
func (s *EventService) Create(ctx context.Context, callerID string, req *EventRequest) (*models.Event, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	event := &models.Event{OrganiserUserID: callerID}
	req.apply(event)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperrors.NewPersistenceError("create event", err)
	}

	logger.WithContext(ctx).WithField("event_id", event.ID).Info("event created")
	return event, nil
}

// Get retrieves an event by ID
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.NewPersistenceError("get event", err)
	}
	return event, nil
}

// ListMine returns the events organised by the caller
func (s *EventService) ListMine(ctx context.Context, callerID string) ([]models.Event, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	events, err := s.repo.GetByOrganiser(ctx, callerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list events", err)
	}
	return events, nil
}

// ownEvent loads an event and hides it from anyone but its organiser
func ownEvent(ctx context.Context, repo repository.EventRepositoryInterface, callerID string, id uuid.UUID) (*models.Event, error) {
	event, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.NewPersistenceError("get event", err)
	}
	if event.OrganiserUserID != callerID {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

// Update replaces the editable fields of an event organised by the caller
func (s *EventService) Update(ctx context.Context, callerID string, id uuid.UUID, req *EventRequest) (*models.Event, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	event, err := ownEvent(ctx, s.repo, callerID, id)
	if err != nil {
		return nil, err
	}
	req.apply(event)
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, apperrors.NewPersistenceError("update event", err)
	}
	return event, nil
}

// Delete removes an event organised by the caller together with its registrations and teams
func (s *EventService) Delete(ctx context.Context, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}

	err := s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		if _, err := ownEvent(ctx, repos.Events, callerID, id); err != nil {
			return err
		}
		if _, err := repos.Participations.DeleteByEventID(ctx, id); err != nil {
			return apperrors.NewPersistenceError("delete event participations", err)
		}
		if _, err := repos.Teams.DeleteByEventID(ctx, id); err != nil {
			return apperrors.NewPersistenceError("delete event teams", err)
		}
		if err := repos.Events.Delete(ctx, id); err != nil {
			return apperrors.NewPersistenceError("delete event", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsPersistence(err) {
			logger.WithContext(ctx).WithField("event_id", id).Errorf("event deletion failed: %v", errors.Unwrap(err))
		}
		return err
	}

	logger.WithContext(ctx).WithField("event_id", id).Info("event deleted")
	return nil
}
