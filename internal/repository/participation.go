package repository

import (
	"context"

	"github.com/KartikTulsian/karyasetu/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipationRepository handles database operations for event participations
type ParticipationRepository struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new participation repository
func NewParticipationRepository(db *gorm.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// CreateSkipDuplicates inserts participations with ON CONFLICT (user_id, event_id) DO NOTHING
func (r *ParticipationRepository) CreateSkipDuplicates(ctx context.Context, participations []models.EventParticipation) (int64, error) {
	if len(participations) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&participations)
	return result.RowsAffected, result.Error
}

// GetByID retrieves a participation by ID together with its team
func (r *ParticipationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EventParticipation, error) {
	var participation models.EventParticipation
	err := r.db.WithContext(ctx).Preload("Team").First(&participation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

// GetByUserAndEvent retrieves the participation of a user in an event
func (r *ParticipationRepository) GetByUserAndEvent(ctx context.Context, userID string, eventID uuid.UUID) (*models.EventParticipation, error) {
	var participation models.EventParticipation
	err := r.db.WithContext(ctx).First(&participation, "user_id = ? AND event_id = ?", userID, eventID).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

// GetByUserID retrieves all participations of a user with event and team loaded
func (r *ParticipationRepository) GetByUserID(ctx context.Context, userID string) ([]models.EventParticipation, error) {
	var participations []models.EventParticipation
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Team").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&participations).Error
	return participations, err
}

// GetByEventID retrieves all participations of an event with user and team loaded
func (r *ParticipationRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]models.EventParticipation, error) {
	var participations []models.EventParticipation
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Team").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participations).Error
	return participations, err
}

// GetByTeamID retrieves the member participations of a team, leader first
func (r *ParticipationRepository) GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.EventParticipation, error) {
	var participations []models.EventParticipation
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("is_team_leader DESC, created_at ASC").
		Find(&participations).Error
	return participations, err
}

// CountByTeamID counts the participations referencing a team
func (r *ParticipationRepository) CountByTeamID(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EventParticipation{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

// UpdateLeaderFlag sets is_team_leader on a participation
func (r *ParticipationRepository) UpdateLeaderFlag(ctx context.Context, id uuid.UUID, isLeader bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.EventParticipation{}).
		Where("id = ?", id).
		Update("is_team_leader", isLeader)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DetachTeam turns every participation of the team into an individual registration
func (r *ParticipationRepository) DetachTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.EventParticipation{}).
		Where("team_id = ?", teamID).
		Updates(map[string]interface{}{"team_id": nil, "is_team_leader": false})
	return result.RowsAffected, result.Error
}

// Delete deletes a participation
func (r *ParticipationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EventParticipation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByEventID deletes every participation of an event
func (r *ParticipationRepository) DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&models.EventParticipation{})
	return result.RowsAffected, result.Error
}
