package repository

import (
	"context"
	"strings"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetByOrganiser retrieves the events organised by a user, soonest first
func (r *EventRepository) GetByOrganiser(ctx context.Context, organiserID string) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("organiser_user_id = ?", organiserID).
		Order("date ASC").
		Find(&events).Error
	return events, err
}

// FindOpenByTitles retrieves upcoming or ongoing events whose title matches one of titles, ignoring case
func (r *EventRepository) FindOpenByTitles(ctx context.Context, titles []string) ([]models.Event, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(titles))
	for i, t := range titles {
		lowered[i] = strings.ToLower(t)
	}

	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("LOWER(title) IN ?", lowered).
		Where("event_status IN ?", []models.EventStatus{models.EventStatusUpcoming, models.EventStatusOngoing}).
		Order("date ASC").
		Find(&events).Error
	return events, err
}

// Update saves changes to an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
