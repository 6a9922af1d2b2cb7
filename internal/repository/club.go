package repository

import (
	"context"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClubRepository handles database operations for clubs and their event links
type ClubRepository struct {
	db *gorm.DB
}

// NewClubRepository creates a new club repository
func NewClubRepository(db *gorm.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create creates a new club
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	var club models.Club
	err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// List retrieves clubs by name, optionally restricted to one college ignoring case
func (r *ClubRepository) List(ctx context.Context, collegeName string) ([]models.Club, error) {
	query := r.db.WithContext(ctx)
	if collegeName != "" {
		query = query.Where("LOWER(college_name) = LOWER(?)", collegeName)
	}

	var clubs []models.Club
	err := query.Order("name ASC").Find(&clubs).Error
	return clubs, err
}

// Update saves changes to a club
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Save(club).Error
}

// Delete deletes a club. Its event links go with it.
func (r *ClubRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Club{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LinkEvents inserts mappings with ON CONFLICT (club_id, event_id) DO NOTHING
func (r *ClubRepository) LinkEvents(ctx context.Context, clubID uuid.UUID, eventIDs []uuid.UUID) (int64, error) {
	if len(eventIDs) == 0 {
		return 0, nil
	}
	mappings := make([]models.EventClubMapping, 0, len(eventIDs))
	for _, id := range eventIDs {
		mappings = append(mappings, models.EventClubMapping{ClubID: clubID, EventID: id})
	}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "club_id"}, {Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&mappings)
	return result.RowsAffected, result.Error
}

// GetEvents retrieves the events linked to a club, soonest first
func (r *ClubRepository) GetEvents(ctx context.Context, clubID uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN event_club_mappings ON event_club_mappings.event_id = events.id").
		Where("event_club_mappings.club_id = ?", clubID).
		Order("events.date ASC").
		Find(&events).Error
	return events, err
}
