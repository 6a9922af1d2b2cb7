package repository

import (
	"context"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResultRepository handles database operations for event results
type ResultRepository struct {
	db *gorm.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create creates a new result
func (r *ResultRepository) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(result).Error
}

// GetByID retrieves a result by ID
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Result, error) {
	var result models.Result
	err := r.db.WithContext(ctx).First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByEventForAudience retrieves the results of an event the audience may read.
// College results are matched against the announcer's college.
func (r *ResultRepository) GetByEventForAudience(ctx context.Context, eventID uuid.UUID, audience Audience) ([]models.Result, error) {
	cond := r.db.Where("results.visible_to = ?", models.TargetGroupAll)
	if audience.UserID != "" {
		cond = cond.Or("results.announced_by = ?", audience.UserID)
	}
	if audience.CollegeName != "" {
		cond = cond.Or("results.visible_to = ? AND LOWER(users.college_name) = LOWER(?)",
			models.TargetGroupCollege, audience.CollegeName)
	}
	for _, id := range audience.EventIDs {
		if id == eventID {
			cond = cond.Or("results.visible_to = ?", models.TargetGroupEventParticipants)
			break
		}
	}

	var results []models.Result
	err := r.db.WithContext(ctx).
		Select("results.*").
		Joins("LEFT JOIN users ON users.id = results.announced_by").
		Where("results.event_id = ?", eventID).
		Where(cond).
		Order("results.created_at DESC").
		Find(&results).Error
	return results, err
}

// Update saves changes to a result
func (r *ResultRepository) Update(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(result).Error
}

// Delete deletes a result
func (r *ResultRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Result{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
