package repository

import (
	"context"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OfferRepository handles database operations for offers
type OfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create creates a new offer
func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(offer).Error
}

// GetByID retrieves an offer by ID together with its target event
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).Preload("TargetEvent").First(&offer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetByCreator retrieves the offers posted by a user, newest first
func (r *OfferRepository) GetByCreator(ctx context.Context, userID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

// ListForAudience retrieves offers for everyone, offers for the reader's college,
// offers for events the reader is registered for and the reader's own offers.
func (r *OfferRepository) ListForAudience(ctx context.Context, audience Audience) ([]models.Offer, error) {
	cond := r.db.Where("target_group_type = ?", models.TargetGroupAll)
	if audience.UserID != "" {
		cond = cond.Or("created_by = ?", audience.UserID)
	}
	if audience.CollegeName != "" {
		cond = cond.Or("target_group_type = ? AND LOWER(target_college_name) = LOWER(?)",
			models.TargetGroupCollege, audience.CollegeName)
	}
	if len(audience.EventIDs) > 0 {
		cond = cond.Or("target_group_type = ? AND target_event_id IN ?",
			models.TargetGroupEventParticipants, audience.EventIDs)
	}

	var offers []models.Offer
	err := r.db.WithContext(ctx).Where(cond).Order("created_at DESC").Find(&offers).Error
	return offers, err
}

// Update saves changes to an offer
func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(offer).Error
}

// Delete deletes an offer
func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Offer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
