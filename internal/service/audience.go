package service

import (
	"context"
	"errors"
	"strings"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// audienceFor describes the caller as a feed reader.
// A caller without a profile has no college and only reaches content meant for everyone.
func audienceFor(ctx context.Context, repos repository.Repositories, callerID string) (repository.Audience, error) {
	audience := repository.Audience{UserID: callerID}

	user, err := repos.Users.GetByID(ctx, callerID)
	switch {
	case err == nil:
		audience.CollegeName = user.CollegeName
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return audience, apperrors.NewPersistenceError("load reader profile", err)
	}

	participations, err := repos.Participations.GetByUserID(ctx, callerID)
	if err != nil {
		return audience, apperrors.NewPersistenceError("load reader registrations", err)
	}
	for _, p := range participations {
		audience.EventIDs = append(audience.EventIDs, p.EventID)
	}
	return audience, nil
}

func registeredFor(audience repository.Audience, eventID uuid.UUID) bool {
	for _, id := range audience.EventIDs {
		if id == eventID {
			return true
		}
	}
	return false
}

// offerReaches mirrors ListForAudience for a single offer
func offerReaches(offer *models.Offer, audience repository.Audience) bool {
	switch offer.TargetGroupType {
	case models.TargetGroupAll:
		return true
	case models.TargetGroupCollege:
		return offer.TargetCollegeName != nil && audience.CollegeName != "" &&
			strings.EqualFold(*offer.TargetCollegeName, audience.CollegeName)
	case models.TargetGroupEventParticipants:
		return offer.TargetEventID != nil && registeredFor(audience, *offer.TargetEventID)
	}
	return false
}
