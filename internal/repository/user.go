package repository

import (
	"context"
	"strings"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"gorm.io/gorm"
)

// UserRepository handles database operations for user profiles
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user profile
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by identity subject
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, ignoring case
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "LOWER(email) = ?", strings.ToLower(email)).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmails returns the users whose email is in emails
func (r *UserRepository) GetByEmails(ctx context.Context, emails []string, caseSensitive bool) ([]models.User, error) {
	var users []models.User
	if len(emails) == 0 {
		return users, nil
	}

	query := r.db.WithContext(ctx)
	if caseSensitive {
		query = query.Where("email IN ?", emails)
	} else {
		lowered := make([]string, len(emails))
		for i, e := range emails {
			lowered[i] = strings.ToLower(e)
		}
		query = query.Where("LOWER(email) IN ?", lowered)
	}

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update saves changes to a user profile
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes a user profile
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
