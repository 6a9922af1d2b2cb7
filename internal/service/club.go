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

// ClubService handles business logic for clubs and the events they run
type ClubService struct {
	repos     repository.Repositories
	tx        repository.TransactorInterface
	validator *validator.Validate
}

// NewClubService creates a new club service
func NewClubService(repos repository.Repositories, tx repository.TransactorInterface, validator *validator.Validate) *ClubService {
	return &ClubService{
		repos:     repos,
		tx:        tx,
		validator: validator,
	}
}

// ClubRequest carries the editable fields of a club.
// EventLinks is a comma separated list of event titles to link. Links are only ever added.
type ClubRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	CollegeName string  `json:"college_name" validate:"required,max=200"`
	EventLinks  string  `json:"event_links" validate:"max=2000"`
}

func (s *ClubService) validate(req *ClubRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.CollegeName = strings.TrimSpace(req.CollegeName)
	req.Description = trimToNil(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return validationError(err)
	}
	return nil
}

func (req *ClubRequest) apply(club *models.Club) {
	club.Name = req.Name
	club.Description = req.Description
	club.CollegeName = req.CollegeName
}

// ParseEventLinks splits a comma separated list of titles into trimmed, non-empty titles, unique ignoring case
func ParseEventLinks(raw string) []string {
	var titles []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		title := strings.TrimSpace(part)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, title)
	}
	return titles
}

// linkEvents maps the club to the open events named in raw. Titles that match nothing are skipped.
func linkEvents(ctx context.Context, repos repository.Repositories, club *models.Club, raw string) error {
	titles := ParseEventLinks(raw)
	if len(titles) == 0 {
		return nil
	}
	events, err := repos.Events.FindOpenByTitles(ctx, titles)
	if err != nil {
		return apperrors.NewPersistenceError("find linked events", err)
	}
	if len(events) < len(titles) {
		logger.WithContext(ctx).WithField("club_id", club.ID).Warn("some event titles did not match an open event")
	}

	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	if _, err := repos.Clubs.LinkEvents(ctx, club.ID, ids); err != nil {
		return apperrors.NewPersistenceError("link club events", err)
	}
	return nil
}

// Create registers a club owned by the caller and links the named events
func (s *ClubService) Create(ctx context.Context, callerID string, req *ClubRequest) (*models.Club, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	club := &models.Club{CreatedBy: callerID}
	req.apply(club)
	err := s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		if err := repos.Clubs.Create(ctx, club); err != nil {
			return apperrors.NewPersistenceError("create club", err)
		}
		if err := linkEvents(ctx, repos, club, req.EventLinks); err != nil {
			return err
		}
		events, err := repos.Clubs.GetEvents(ctx, club.ID)
		if err != nil {
			return apperrors.NewPersistenceError("load club events", err)
		}
		club.Events = events
		return nil
	})
	if err != nil {
		if apperrors.IsPersistence(err) {
			logger.WithContext(ctx).Errorf("club creation failed: %v", errors.Unwrap(err))
		}
		return nil, err
	}

	logger.WithContext(ctx).WithField("club_id", club.ID).Info("club created")
	return club, nil
}

// Get retrieves a club with its linked events
func (s *ClubService) Get(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	club, err := s.repos.Clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, apperrors.NewPersistenceError("get club", err)
	}
	events, err := s.repos.Clubs.GetEvents(ctx, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError("load club events", err)
	}
	club.Events = events
	return club, nil
}

// List returns the clubs of a college, or every club when collegeName is empty
func (s *ClubService) List(ctx context.Context, collegeName string) ([]models.Club, error) {
	clubs, err := s.repos.Clubs.List(ctx, strings.TrimSpace(collegeName))
	if err != nil {
		return nil, apperrors.NewPersistenceError("list clubs", err)
	}
	return clubs, nil
}

// ownClub loads a club and hides it from anyone but its creator
func ownClub(ctx context.Context, repos repository.Repositories, callerID string, id uuid.UUID) (*models.Club, error) {
	club, err := repos.Clubs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrClubNotFound
		}
		return nil, apperrors.NewPersistenceError("get club", err)
	}
	if club.CreatedBy != callerID {
		return nil, apperrors.ErrClubNotFound
	}
	return club, nil
}

// Update replaces the club's fields and links any newly named events. Existing links are kept.
func (s *ClubService) Update(ctx context.Context, callerID string, id uuid.UUID, req *ClubRequest) (*models.Club, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	var updated *models.Club
	err := s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		club, err := ownClub(ctx, repos, callerID, id)
		if err != nil {
			return err
		}
		req.apply(club)
		if err := repos.Clubs.Update(ctx, club); err != nil {
			return apperrors.NewPersistenceError("update club", err)
		}
		if err := linkEvents(ctx, repos, club, req.EventLinks); err != nil {
			return err
		}
		events, err := repos.Clubs.GetEvents(ctx, club.ID)
		if err != nil {
			return apperrors.NewPersistenceError("load club events", err)
		}
		club.Events = events
		updated = club
		return nil
	})
	if err != nil {
		if apperrors.IsPersistence(err) {
			logger.WithContext(ctx).WithField("club_id", id).Errorf("club update failed: %v", errors.Unwrap(err))
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a club owned by the caller together with its event links
func (s *ClubService) Delete(ctx context.Context, callerID string, id uuid.UUID) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}
	if _, err := ownClub(ctx, s.repos, callerID, id); err != nil {
		return err
	}
	if err := s.repos.Clubs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrClubNotFound
		}
		return apperrors.NewPersistenceError("delete club", err)
	}

	logger.WithContext(ctx).WithField("club_id", id).Info("club deleted")
	return nil
}
