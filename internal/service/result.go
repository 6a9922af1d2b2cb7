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

// ResultService handles announcement of event results
type ResultService struct {
	repos     repository.Repositories
	validator *validator.Validate
}

// NewResultService creates a new result service
func NewResultService(repos repository.Repositories, validator *validator.Validate) *ResultService {
	return &ResultService{
		repos:     repos,
		validator: validator,
	}
}

// ResultRequest carries every editable field of a result. A blank media URL is stored as none.
type ResultRequest struct {
	EventID    uuid.UUID          `json:"event_id" validate:"required"`
	ResultText string             `json:"result_text" validate:"required"`
	VisibleTo  models.TargetGroup `json:"visible_to" validate:"required,oneof=ALL COLLEGE EVENT_PARTICIPANTS"`
	MediaURL   *string            `json:"media_url,omitempty" validate:"omitempty,url,max=500"`
}

// validate trims the request in place and checks it
func (s *ResultService) validate(req *ResultRequest) error {
	req.ResultText = strings.TrimSpace(req.ResultText)
	req.MediaURL = trimToNil(req.MediaURL)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

func (s *ResultService) requireEvent(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repos.Events.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEventNotFound
		}
		return apperrors.NewPersistenceError("load event", err)
	}
	return nil
}

func (req *ResultRequest) apply(result *models.Result) {
	result.EventID = req.EventID
	result.ResultText = req.ResultText
	result.VisibleTo = req.VisibleTo
	result.MediaURL = req.MediaURL
	result.Event = nil
}

// Create announces a result on behalf of the caller
func (s *ResultService) Create(ctx context.Context, callerID string, req *ResultRequest) (*models.Result, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.requireEvent(ctx, req.EventID); err != nil {
		return nil, err
	}

	result := &models.Result{AnnouncedBy: callerID}
	req.apply(result)
	if err := s.repos.Results.Create(ctx, result); err != nil {
		return nil, apperrors.NewPersistenceError("create result", err)
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"result_id": result.ID,
		"event_id":  result.EventID,
	}).Info("result announced")
	return result, nil
}

func (s *ResultService) load(ctx context.Context, id uuid.UUID) (*models.Result, error) {
	result, err := s.repos.Results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrResultNotFound
		}
		return nil, apperrors.NewPersistenceError("get result", err)
	}
	return result, nil
}

// Get retrieves a result the caller may read. Results outside the caller's audience are reported as missing.
func (s *ResultService) Get(ctx context.Context, callerID string, id uuid.UUID) (*models.Result, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	result, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.AnnouncedBy == callerID || result.VisibleTo == models.TargetGroupAll {
		return result, nil
	}

	audience, err := audienceFor(ctx, s.repos, callerID)
	if err != nil {
		return nil, err
	}
	ok, err := s.reaches(ctx, result, audience)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrResultNotFound
	}
	return result, nil
}

// reaches applies the same visibility rules as GetByEventForAudience to a single result
func (s *ResultService) reaches(ctx context.Context, result *models.Result, audience repository.Audience) (bool, error) {
	switch result.VisibleTo {
	case models.TargetGroupEventParticipants:
		return registeredFor(audience, result.EventID), nil
	case models.TargetGroupCollege:
		if audience.CollegeName == "" {
			return false, nil
		}
		announcer, err := s.repos.Users.GetByID(ctx, result.AnnouncedBy)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, apperrors.NewPersistenceError("load result announcer", err)
		}
		return strings.EqualFold(announcer.CollegeName, audience.CollegeName), nil
	}
	return false, nil
}

// ListByEvent returns the results of an event the caller may read.
// College results reach readers of the announcer's college, participant results reach registered users.
func (s *ResultService) ListByEvent(ctx context.Context, callerID string, eventID uuid.UUID) ([]models.Result, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}

	audience, err := audienceFor(ctx, s.repos, callerID)
	if err != nil {
		return nil, err
	}
	results, err := s.repos.Results.GetByEventForAudience(ctx, eventID, audience)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list results", err)
	}
	return results, nil
}

// ownResult loads a result and hides it from anyone but its announcer
func (s *ResultService) ownResult(ctx context.Context, callerID string, id uuid.UUID) (*models.Result, error) {
	result, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.AnnouncedBy != callerID {
		return nil, apperrors.ErrResultNotFound
	}
	return result, nil
}

// Update replaces the editable fields of a result announced by the caller
func (s *ResultService) Update(ctx context.Context, callerID string, id uuid.UUID, req *ResultRequest) (*models.Result, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	result, err := s.ownResult(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if result.EventID != req.EventID {
		if err := s.requireEvent(ctx, req.EventID); err != nil {
			return nil, err
		}
	}

	req.apply(result)
	if err := s.repos.Results.Update(ctx, result); err != nil {
		return nil, apperrors.NewPersistenceError("update result", err)
	}
	return result, nil
}

// Delete removes a result announced by the caller
func (s *ResultService) Delete(ctx context.Context, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}
	if _, err := s.ownResult(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repos.Results.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrResultNotFound
		}
		return apperrors.NewPersistenceError("delete result", err)
	}

	logger.WithContext(ctx).WithField("result_id", id).Info("result deleted")
	return nil
}
