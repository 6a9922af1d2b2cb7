package service

import (
	"context"
	"errors"
	"strings"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/logger"
	"github.com/KartikTulsian/karyasetu/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferService handles business logic for offers
type OfferService struct {
	repos     repository.Repositories
	validator *validator.Validate
}

// NewOfferService creates a new offer service
func NewOfferService(repos repository.Repositories, validator *validator.Validate) *OfferService {
	return &OfferService{
		repos:     repos,
		validator: validator,
	}
}

// OfferRequest carries every editable field of an offer. It is used for both create and full update.
// TargetEventName names an upcoming or ongoing event, matched ignoring case.
type OfferRequest struct {
	Title             string             `json:"title" validate:"required,max=200"`
	Description       string             `json:"description" validate:"required"`
	TargetGroupType   models.TargetGroup `json:"target_group_type" validate:"required,oneof=ALL COLLEGE EVENT_PARTICIPANTS"`
	TargetCollegeName *string            `json:"target_college_name,omitempty" validate:"omitempty,max=200"`
	TargetEventName   *string            `json:"target_event_name,omitempty" validate:"omitempty,max=200"`
	OfferType         models.OfferType   `json:"offer_type" validate:"required,oneof=TEAM_RECRUITMENT ANNOUNCEMENT"`
}

// validate trims the request in place and checks it
func (s *OfferService) validate(req *OfferRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.TargetCollegeName = trimToNil(req.TargetCollegeName)
	req.TargetEventName = trimToNil(req.TargetEventName)

	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	switch req.TargetGroupType {
	case models.TargetGroupCollege:
		if req.TargetCollegeName == nil {
			return apperrors.ErrOfferCollegeRequired
		}
	case models.TargetGroupEventParticipants:
		if req.TargetEventName == nil {
			return apperrors.ErrOfferEventRequired
		}
	}
	return nil
}

// targetEvent resolves the named event, picking the soonest when several share the name
func (s *OfferService) targetEvent(ctx context.Context, name *string) (*uuid.UUID, error) {
	if name == nil {
		return nil, nil
	}
	events, err := s.repos.Events.FindOpenByTitles(ctx, []string{*name})
	if err != nil {
		return nil, apperrors.NewPersistenceError("find target event", err)
	}
	if len(events) == 0 {
		return nil, apperrors.ErrOfferEventInvalid
	}
	return &events[0].ID, nil
}

func (req *OfferRequest) apply(offer *models.Offer, eventID *uuid.UUID) {
	offer.Title = req.Title
	offer.Description = req.Description
	offer.TargetGroupType = req.TargetGroupType
	offer.TargetCollegeName = req.TargetCollegeName
	offer.OfferType = req.OfferType
	offer.TargetEventID = eventID
	offer.TargetEvent = nil
}

// Create posts an offer on behalf of the caller
func (s *OfferService) Create(ctx context.Context, callerID string, req *OfferRequest) (*models.Offer, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	eventID, err := s.targetEvent(ctx, req.TargetEventName)
	if err != nil {
		return nil, err
	}

	offer := &models.Offer{CreatedBy: callerID}
	req.apply(offer, eventID)
	if err := s.repos.Offers.Create(ctx, offer); err != nil {
		return nil, apperrors.NewPersistenceError("create offer", err)
	}

	logger.WithContext(ctx).WithField("offer_id", offer.ID).Info("offer created")
	return offer, nil
}

func (s *OfferService) load(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	offer, err := s.repos.Offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, apperrors.NewPersistenceError("get offer", err)
	}
	return offer, nil
}

// Get retrieves an offer addressed to the caller. Offers outside the caller's audience are reported as missing.
func (s *OfferService) Get(ctx context.Context, callerID string, id uuid.UUID) (*models.Offer, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	offer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.CreatedBy == callerID || offer.TargetGroupType == models.TargetGroupAll {
		return offer, nil
	}

	audience, err := audienceFor(ctx, s.repos, callerID)
	if err != nil {
		return nil, err
	}
	if !offerReaches(offer, audience) {
		return nil, apperrors.ErrOfferNotFound
	}
	return offer, nil
}

// ListMine returns the offers posted by the caller
func (s *OfferService) ListMine(ctx context.Context, callerID string) ([]models.Offer, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	offers, err := s.repos.Offers.GetByCreator(ctx, callerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list offers", err)
	}
	return offers, nil
}

// Feed returns the offers addressed to the caller: offers for everyone, offers for the caller's college
// and offers for events the caller is registered for.
func (s *OfferService) Feed(ctx context.Context, callerID string) ([]models.Offer, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	audience, err := audienceFor(ctx, s.repos, callerID)
	if err != nil {
		return nil, err
	}
	offers, err := s.repos.Offers.ListForAudience(ctx, audience)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list offer feed", err)
	}
	return offers, nil
}

// ownOffer loads an offer and hides it from anyone but its creator
func (s *OfferService) ownOffer(ctx context.Context, callerID string, id uuid.UUID) (*models.Offer, error) {
	offer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer.CreatedBy != callerID {
		return nil, apperrors.ErrOfferNotFound
	}
	return offer, nil
}

// Update replaces the editable fields of an offer posted by the caller
func (s *OfferService) Update(ctx context.Context, callerID string, id uuid.UUID, req *OfferRequest) (*models.Offer, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	offer, err := s.ownOffer(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	eventID, err := s.targetEvent(ctx, req.TargetEventName)
	if err != nil {
		return nil, err
	}
	req.apply(offer, eventID)
	if err := s.repos.Offers.Update(ctx, offer); err != nil {
		return nil, apperrors.NewPersistenceError("update offer", err)
	}
	return offer, nil
}

// Delete removes an offer posted by the caller
func (s *OfferService) Delete(ctx context.Context, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}
	if _, err := s.ownOffer(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repos.Offers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOfferNotFound
		}
		return apperrors.NewPersistenceError("delete offer", err)
	}

	logger.WithContext(ctx).WithField("offer_id", id).Info("offer deleted")
	return nil
}
