package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/logger"
	"github.com/KartikTulsian/karyasetu/internal/metrics"
	"github.com/KartikTulsian/karyasetu/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParticipationService handles event registration, team formation and withdrawal
type ParticipationService struct {
	repos         repository.Repositories
	tx            repository.TransactorInterface
	validator     *validator.Validate
	caseSensitive bool
	now           func() time.Time
}

// NewParticipationService creates a new participation service.
// caseSensitiveEmails switches member email matching from case-insensitive to exact.
func NewParticipationService(repos repository.Repositories, tx repository.TransactorInterface, validator *validator.Validate, caseSensitiveEmails bool) *ParticipationService {
	return &ParticipationService{
		repos:         repos,
		tx:            tx,
		validator:     validator,
		caseSensitive: caseSensitiveEmails,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for registration deadlines
func (s *ParticipationService) WithClock(now func() time.Time) *ParticipationService {
	s.now = now
	return s
}

// RegisterParticipationRequest represents a registration for an event, individually or as a new team.
// Either IsTeamLeader or CreateTeam asks for a team to be formed.
type RegisterParticipationRequest struct {
	EventID         uuid.UUID `json:"event_id" validate:"required"`
	ParticipantName string    `json:"participant_name" validate:"required,min=1,max=100"`
	IsTeamLeader    bool      `json:"is_team_leader"`
	CreateTeam      bool      `json:"create_team"`
	TeamName        string    `json:"team_name" validate:"max=100"`
	MaxTeamSize     *int      `json:"max_team_size,omitempty" validate:"omitempty,min=0"`
	MemberEmails    string    `json:"member_emails" validate:"max=2000"`
}

// wantsTeam reports whether the registrant is forming a team
func (r *RegisterParticipationRequest) wantsTeam() bool {
	return r.IsTeamLeader || r.CreateTeam
}

// RegistrationResult describes what a registration persisted
type RegistrationResult struct {
	TeamID            *uuid.UUID `json:"team_id,omitempty"`
	Registered        int64      `json:"registered"`
	AlreadyRegistered bool       `json:"already_registered"`
	UnresolvedEmails  []string   `json:"unresolved_emails,omitempty"`
}

// UpdateParticipationRequest edits the caller's registration. Nil fields are left unchanged.
type UpdateParticipationRequest struct {
	TeamName     *string `json:"team_name,omitempty" validate:"omitempty,min=1,max=100"`
	MaxTeamSize  *int    `json:"max_team_size,omitempty" validate:"omitempty,min=0"`
	IsTeamLeader *bool   `json:"is_team_leader,omitempty"`
}

func (r *UpdateParticipationRequest) editsTeam() bool {
	return r.TeamName != nil || r.MaxTeamSize != nil
}

// WithdrawalResult describes the effects of a withdrawal
type WithdrawalResult struct {
	TeamDissolved   bool  `json:"team_dissolved"`
	DetachedMembers int64 `json:"detached_members"`
}

// TeamDetail is a team together with its member registrations
type TeamDetail struct {
	Team    *models.Team                `json:"team"`
	Members []models.EventParticipation `json:"members"`
}

// Register admits the caller, and for team registrations the resolved members, to an event.
// Capacity is checked before any write and checked again inside the transaction with the team row locked.
func (s *ParticipationService) Register(ctx context.Context, callerID string, req *RegisterParticipationRequest) (result *RegistrationResult, err error) {
	defer func() { metrics.ObserveRegistration(apperrors.Kind(err)) }()

	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	teamIntent := req.wantsTeam()
	teamName := strings.TrimSpace(req.TeamName)
	if teamIntent && teamName == "" {
		return nil, apperrors.ErrTeamNameRequired
	}

	emails, err := ParseMemberEmails(s.validator, req.MemberEmails)
	if err != nil {
		return nil, err
	}

	event, err := s.repos.Events.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.NewPersistenceError("load event", err)
	}
	if event.EventStatus == models.EventStatusCompleted {
		return nil, apperrors.ErrEventCompleted
	}
	if !event.RegistrationOpen(s.now()) {
		return nil, apperrors.ErrRegistrationClosed
	}

	log := logger.WithContext(ctx).WithFields(map[string]interface{}{
		"event_id":  event.ID,
		"team":      teamIntent,
		"requester": callerID,
	})

	capacity := 0
	var members, unresolved []string
	if teamIntent {
		capacity, err = teamCapacity(req.MaxTeamSize, event)
		if err != nil {
			return nil, err
		}

		if len(emails) > 0 {
			users, err := s.repos.Users.GetByEmails(ctx, emails, s.caseSensitive)
			if err != nil {
				log.Errorf("failed to resolve member emails: %v", err)
				return nil, apperrors.NewPersistenceError("resolve member emails", err)
			}
			members, unresolved = resolveMembers(emails, users, s.caseSensitive)
			if len(unresolved) > 0 {
				log.WithField("emails", unresolved).Warn("member emails did not match any user")
				metrics.AddUnresolvedEmails(len(unresolved))
			}
		}
	}

	admitted := admittedSet(callerID, members)
	if capacity > 0 && len(admitted) > capacity {
		return nil, apperrors.NewCapacityExceededError(capacity, len(admitted))
	}

	if _, err := s.repos.Users.GetByID(ctx, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileRequired
		}
		return nil, apperrors.NewPersistenceError("load caller profile", err)
	}

	result = &RegistrationResult{UnresolvedEmails: unresolved}
	err = s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Participations.GetByUserAndEvent(ctx, callerID, event.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewPersistenceError("check existing registration", err)
		}
		if existing != nil {
			if teamIntent {
				return apperrors.ErrAlreadyRegisteredTeam
			}
			result.AlreadyRegistered = true
			return nil
		}

		var teamID *uuid.UUID
		if teamIntent {
			team := &models.Team{
				TeamName:   teamName,
				EventID:    event.ID,
				CreatedBy:  callerID,
				MaxMembers: capacity,
			}
			if err := repos.Teams.Create(ctx, team); err != nil {
				return apperrors.NewPersistenceError("create team", err)
			}
			teamID = &team.ID
		}

		rows := make([]models.EventParticipation, 0, len(admitted))
		for _, userID := range admitted {
			rows = append(rows, models.EventParticipation{
				UserID:       userID,
				EventID:      event.ID,
				TeamID:       teamID,
				IsTeamLeader: teamIntent && userID == callerID,
			})
		}
		inserted, err := repos.Participations.CreateSkipDuplicates(ctx, rows)
		if err != nil {
			return apperrors.NewPersistenceError("create participations", err)
		}
		result.Registered = inserted

		if teamID == nil {
			return nil
		}
		if err := verifyTeam(ctx, repos, *teamID, callerID, event.ID); err != nil {
			return err
		}
		result.TeamID = teamID
		return nil
	})
	if err != nil {
		if apperrors.IsPersistence(err) {
			log.Errorf("registration failed: %v", errors.Unwrap(err))
		}
		return nil, err
	}

	if result.AlreadyRegistered {
		log.Debug("caller already registered, nothing to do")
	} else {
		log.WithField("registered", result.Registered).Info("registration admitted")
	}
	return result, nil
}

// verifyTeam re-counts a freshly populated team under a row lock and makes sure the leader row belongs to it.
// The leader row can be missing when a concurrent request registered the leader first.
func verifyTeam(ctx context.Context, repos repository.Repositories, teamID uuid.UUID, leaderID string, eventID uuid.UUID) error {
	team, err := repos.Teams.GetByIDForUpdate(ctx, teamID)
	if err != nil {
		return apperrors.NewPersistenceError("lock team", err)
	}
	count, err := repos.Participations.CountByTeamID(ctx, teamID)
	if err != nil {
		return apperrors.NewPersistenceError("count team members", err)
	}
	if !team.Admits(int(count)) {
		return apperrors.NewCapacityExceededError(team.MaxMembers, int(count))
	}

	leader, err := repos.Participations.GetByUserAndEvent(ctx, leaderID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLeaderAlreadyRegistered
		}
		return apperrors.NewPersistenceError("check leader registration", err)
	}
	if leader.TeamID == nil || *leader.TeamID != teamID {
		return apperrors.ErrLeaderAlreadyRegistered
	}
	return nil
}

// teamCapacity picks the capacity of a new team. A missing or zero request falls back to the event's limit.
func teamCapacity(requested *int, event *models.Event) (int, error) {
	ceiling := 0
	if event.MaxTeamSize != nil && *event.MaxTeamSize > 0 {
		ceiling = *event.MaxTeamSize
	}
	if requested == nil || *requested == 0 {
		return ceiling, nil
	}
	if ceiling > 0 && *requested > ceiling {
		return 0, apperrors.ErrTeamCapacityAboveEvent
	}
	return *requested, nil
}

// Update edits the caller's own registration. Team name and capacity can only be changed by the team leader,
// and capacity never drops below the current member count.
func (s *ParticipationService) Update(ctx context.Context, callerID string, id uuid.UUID, req *UpdateParticipationRequest) (*models.EventParticipation, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.TeamName != nil && strings.TrimSpace(*req.TeamName) == "" {
		return nil, apperrors.ErrTeamNameRequired
	}

	var updated *models.EventParticipation
	err := s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		p, err := ownParticipation(ctx, repos, callerID, id)
		if err != nil {
			return err
		}

		promoting := req.IsTeamLeader != nil && *req.IsTeamLeader
		var team *models.Team
		if p.TeamID != nil && (req.editsTeam() || promoting) {
			team, err = repos.Teams.GetByIDForUpdate(ctx, *p.TeamID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrTeamNotFound
				}
				return apperrors.NewPersistenceError("lock team", err)
			}
			if team.CreatedBy != callerID {
				return apperrors.ErrNotTeamLeader
			}
		}

		if team != nil && req.editsTeam() {
			if req.MaxTeamSize != nil && *req.MaxTeamSize > 0 {
				count, err := repos.Participations.CountByTeamID(ctx, team.ID)
				if err != nil {
					return apperrors.NewPersistenceError("count team members", err)
				}
				if int(count) > *req.MaxTeamSize {
					return apperrors.NewCapacityExceededError(*req.MaxTeamSize, int(count))
				}
			}
			if req.TeamName != nil {
				team.TeamName = strings.TrimSpace(*req.TeamName)
			}
			if req.MaxTeamSize != nil {
				team.MaxMembers = *req.MaxTeamSize
			}
			if err := repos.Teams.Update(ctx, team); err != nil {
				return apperrors.NewPersistenceError("update team", err)
			}
			p.Team = team
		}

		if req.IsTeamLeader != nil && *req.IsTeamLeader != p.IsTeamLeader {
			if err := repos.Participations.UpdateLeaderFlag(ctx, p.ID, *req.IsTeamLeader); err != nil {
				return apperrors.NewPersistenceError("update participation", err)
			}
			p.IsTeamLeader = *req.IsTeamLeader
		}

		updated = p
		return nil
	})
	if err != nil {
		if apperrors.IsPersistence(err) {
			logger.WithContext(ctx).WithField("participation_id", id).Errorf("update failed: %v", errors.Unwrap(err))
		}
		return nil, err
	}
	return updated, nil
}

// Withdraw removes the caller's registration. When the caller leads a team the team is dissolved
// and the remaining members stay registered as individuals.
func (s *ParticipationService) Withdraw(ctx context.Context, callerID string, id uuid.UUID) (*WithdrawalResult, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	result := &WithdrawalResult{}
	err := s.tx.Transaction(ctx, func(repos repository.Repositories) error {
		p, err := ownParticipation(ctx, repos, callerID, id)
		if err != nil {
			return err
		}

		if err := repos.Participations.Delete(ctx, p.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrParticipationNotFound
			}
			return apperrors.NewPersistenceError("delete participation", err)
		}

		if !p.IsTeamLeader || p.TeamID == nil {
			return nil
		}

		detached, err := repos.Participations.DetachTeam(ctx, *p.TeamID)
		if err != nil {
			return apperrors.NewPersistenceError("detach team members", err)
		}
		if err := repos.Teams.Delete(ctx, *p.TeamID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewPersistenceError("delete team", err)
		}
		result.TeamDissolved = true
		result.DetachedMembers = detached
		return nil
	})
	if err != nil {
		if apperrors.IsPersistence(err) {
			logger.WithContext(ctx).WithField("participation_id", id).Errorf("withdrawal failed: %v", errors.Unwrap(err))
		}
		return nil, err
	}

	if result.TeamDissolved {
		logger.WithContext(ctx).WithFields(map[string]interface{}{
			"participation_id": id,
			"detached_members": result.DetachedMembers,
		}).Info("team dissolved after leader withdrawal")
	}
	return result, nil
}

// ownParticipation loads a participation and hides it from anyone but its owner
func ownParticipation(ctx context.Context, repos repository.Repositories, callerID string, id uuid.UUID) (*models.EventParticipation, error) {
	p, err := repos.Participations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, apperrors.NewPersistenceError("load participation", err)
	}
	if p.UserID != callerID {
		return nil, apperrors.ErrParticipationNotFound
	}
	return p, nil
}

// ListMine returns the caller's registrations
func (s *ParticipationService) ListMine(ctx context.Context, callerID string) ([]models.EventParticipation, error) {
	if callerID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	participations, err := s.repos.Participations.GetByUserID(ctx, callerID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list participations", err)
	}
	return participations, nil
}

// ListByEvent returns every registration of an event
func (s *ParticipationService) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.EventParticipation, error) {
	if _, err := s.repos.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.NewPersistenceError("load event", err)
	}
	participations, err := s.repos.Participations.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list participations", err)
	}
	return participations, nil
}

// GetTeam returns a team with its members, leader first
func (s *ParticipationService) GetTeam(ctx context.Context, teamID uuid.UUID) (*TeamDetail, error) {
	team, err := s.repos.Teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, apperrors.NewPersistenceError("load team", err)
	}
	members, err := s.repos.Participations.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list team members", err)
	}
	return &TeamDetail{Team: team, Members: members}, nil
}
