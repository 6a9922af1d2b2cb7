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
	"gorm.io/gorm"
)

// UserService handles business logic for user profiles
type UserService struct {
	repo      repository.UserRepositoryInterface
	tx        repository.TransactorInterface
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, tx repository.TransactorInterface, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		tx:        tx,
		validator: validator,
	}
}

// CreateUserRequest represents the request to create the caller's profile
type CreateUserRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"required,email,max=255"`
	CollegeName   string  `json:"college_name" validate:"required,min=2,max=200"`
	Course        string  `json:"course" validate:"required,min=2,max=100"`
	Year          int     `json:"year" validate:"required,min=1,max=5"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty" validate:"omitempty,url,max=500"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=200"`
	PhoneNumber   *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CollegeName   *string `json:"college_name,omitempty" validate:"omitempty,min=2,max=200"`
	Course        *string `json:"course,omitempty" validate:"omitempty,min=2,max=100"`
	Year          *int    `json:"year,omitempty" validate:"omitempty,min=1,max=5"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty" validate:"omitempty,url,max=500"`
	Bio           *string `json:"bio,omitempty" validate:"omitempty,max=200"`
	PhoneNumber   *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
}

// CreateProfile creates the profile of the caller. The profile id is the caller identity.
func (s *UserService) CreateProfile(ctx context.Context, callerID string, req *CreateUserRequest) (*models.User, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.repo.GetByID(ctx, callerID); err == nil {
		return nil, apperrors.NewAlreadyExistsError("user", "for this identity")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewPersistenceError("check existing profile", err)
	}

	email := strings.TrimSpace(req.Email)
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewPersistenceError("check existing email", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	user := &models.User{
		ID:            callerID,
		Email:         email,
		Name:          strings.TrimSpace(req.Name),
		CollegeName:   strings.TrimSpace(req.CollegeName),
		Course:        strings.TrimSpace(req.Course),
		Year:          req.Year,
		ProfilePicURL: req.ProfilePicURL,
		Bio:           req.Bio,
		PhoneNumber:   req.PhoneNumber,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.ErrUserExists
		}
		return nil, apperrors.NewPersistenceError("create user", err)
	}

	logger.WithContext(ctx).WithField("user_id", user.ID).Info("user profile created")
	return user, nil
}

// GetProfile retrieves a profile by identity
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.NewPersistenceError("get user", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of req to the caller's profile
func (s *UserService) UpdateProfile(ctx context.Context, callerID string, req *UpdateUserRequest) (*models.User, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.GetProfile(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.CollegeName != nil {
		user.CollegeName = strings.TrimSpace(*req.CollegeName)
	}
	if req.Course != nil {
		user.Course = strings.TrimSpace(*req.Course)
	}
	if req.Year != nil {
		user.Year = *req.Year
	}
	if req.ProfilePicURL != nil {
		user.ProfilePicURL = req.ProfilePicURL
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.NewPersistenceError("update user", err)
	}
	return user, nil
}

// DeleteProfile removes the caller's profile. Teams the caller leads are dissolved first,
// and the caller's registrations go with the profile through the foreign key cascade.
func (s *UserService) DeleteProfile(ctx context.Context, callerID string) error {
	if callerID == "" {
		return apperrors.ErrUnauthenticated
	}

	return s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		participations, err := repos.Participations.GetByUserID(ctx, callerID)
		if err != nil {
			return apperrors.NewPersistenceError("list participations", err)
		}
		for _, p := range participations {
			if !p.IsTeamLeader || p.TeamID == nil {
				continue
			}
			if _, err := repos.Participations.DetachTeam(ctx, *p.TeamID); err != nil {
				return apperrors.NewPersistenceError("detach team members", err)
			}
			if err := repos.Teams.Delete(ctx, *p.TeamID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewPersistenceError("delete team", err)
			}
		}

		if err := repos.Users.Delete(ctx, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.NewPersistenceError("delete user", err)
		}
		return nil
	})
}
