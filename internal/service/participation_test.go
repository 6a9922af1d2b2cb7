package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/mocks"
	"github.com/KartikTulsian/karyasetu/internal/repository"
	"github.com/KartikTulsian/karyasetu/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const leaderID = "user_leader"

// ParticipationServiceTestSuite defines the test suite for ParticipationService
type ParticipationServiceTestSuite struct {
	suite.Suite
	ctrl                  *gomock.Controller
	mockUserRepo          *mocks.MockUserRepositoryInterface
	mockEventRepo         *mocks.MockEventRepositoryInterface
	mockTeamRepo          *mocks.MockTeamRepositoryInterface
	mockParticipationRepo *mocks.MockParticipationRepositoryInterface
	mockTx                *mocks.MockTransactorInterface
	repos                 repository.Repositories
	participationService  *service.ParticipationService
	ctx                   context.Context
	now                   time.Time
	event                 *models.Event
}

// SetupTest sets up the test suite
func (suite *ParticipationServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockEventRepo = mocks.NewMockEventRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockParticipationRepo = mocks.NewMockParticipationRepositoryInterface(suite.ctrl)
	suite.mockTx = mocks.NewMockTransactorInterface(suite.ctrl)
	suite.repos = repository.Repositories{
		Users:          suite.mockUserRepo,
		Events:         suite.mockEventRepo,
		Teams:          suite.mockTeamRepo,
		Participations: suite.mockParticipationRepo,
	}
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	deadline := suite.now.Add(48 * time.Hour)
	suite.event = &models.Event{
		BaseModel:            models.BaseModel{ID: uuid.New()},
		Title:                "HackFest",
		Date:                 suite.now.Add(72 * time.Hour),
		RegistrationDeadline: &deadline,
		EventStatus:          models.EventStatusUpcoming,
		Category:             models.CategoryHackathon,
		OrganiserUserID:      "user_organiser",
	}

	suite.participationService = service.NewParticipationService(suite.repos, suite.mockTx, service.NewValidator(), false).
		WithClock(func() time.Time { return suite.now })
}

// TearDownTest cleans up after each test
func (suite *ParticipationServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// expectTransaction runs the unit of work against the mocked repositories
func (suite *ParticipationServiceTestSuite) expectTransaction() {
	suite.mockTx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(repository.Repositories) error) error {
			return fn(suite.repos)
		})
}

// expectProfile reports that userID has a profile row
func (suite *ParticipationServiceTestSuite) expectProfile(userID string) {
	suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), userID).Return(&models.User{ID: userID}, nil)
}

func (suite *ParticipationServiceTestSuite) expectEvent() {
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), suite.event.ID).Return(suite.event, nil)
}

// expectTeamCreate assigns an ID the way the BeforeCreate hook would and reports it through id
func (suite *ParticipationServiceTestSuite) expectTeamCreate(id *uuid.UUID, captured **models.Team) {
	suite.mockTeamRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, team *models.Team) error {
			team.ID = uuid.New()
			*id = team.ID
			if captured != nil {
				*captured = team
			}
			return nil
		})
}

// expectInsert captures inserted rows and reports every row as inserted
func (suite *ParticipationServiceTestSuite) expectInsert(rows *[]models.EventParticipation) {
	suite.mockParticipationRepo.EXPECT().
		CreateSkipDuplicates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ps []models.EventParticipation) (int64, error) {
			*rows = ps
			return int64(len(ps)), nil
		})
}

// expectVerify expects the locked re-count and the leader check for a new team
func (suite *ParticipationServiceTestSuite) expectVerify(teamID *uuid.UUID, team **models.Team, count int64) {
	suite.mockTeamRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID) (*models.Team, error) {
			assert.Equal(suite.T(), *teamID, id)
			return *team, nil
		})
	suite.mockParticipationRepo.EXPECT().
		CountByTeamID(gomock.Any(), gomock.Any()).
		Return(count, nil)
	suite.mockParticipationRepo.EXPECT().
		GetByUserAndEvent(gomock.Any(), leaderID, suite.event.ID).
		DoAndReturn(func(ctx context.Context, userID string, eventID uuid.UUID) (*models.EventParticipation, error) {
			return &models.EventParticipation{UserID: userID, EventID: eventID, TeamID: teamID, IsTeamLeader: true}, nil
		})
}

func (suite *ParticipationServiceTestSuite) expectNotRegistered(userID string) {
	suite.mockParticipationRepo.EXPECT().
		GetByUserAndEvent(gomock.Any(), userID, suite.event.ID).
		Return(nil, gorm.ErrRecordNotFound)
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func (suite *ParticipationServiceTestSuite) teamRequest(maxSize *int, emails string) *service.RegisterParticipationRequest {
	return &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Leader",
		IsTeamLeader:    true,
		TeamName:        "Byte Busters",
		MaxTeamSize:     maxSize,
		MemberEmails:    emails,
	}
}

func (suite *ParticipationServiceTestSuite) TestRegister_Unauthenticated() {
	result, err := suite.participationService.Register(suite.ctx, "", &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Anon",
	})

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), apperrors.KindUnauthenticated, apperrors.Kind(err))
}

func (suite *ParticipationServiceTestSuite) TestRegister_ValidationErrors() {
	testCases := []struct {
		name    string
		request *service.RegisterParticipationRequest
		field   string
	}{
		{
			name:    "missing event",
			request: &service.RegisterParticipationRequest{ParticipantName: "A"},
			field:   "event_id",
		},
		{
			name:    "missing participant name",
			request: &service.RegisterParticipationRequest{EventID: suite.event.ID},
			field:   "participant_name",
		},
		{
			name: "negative team size",
			request: &service.RegisterParticipationRequest{
				EventID: suite.event.ID, ParticipantName: "A", CreateTeam: true, TeamName: "T", MaxTeamSize: intPtr(-1),
			},
			field: "max_team_size",
		},
		{
			name: "team intent without team name",
			request: &service.RegisterParticipationRequest{
				EventID: suite.event.ID, ParticipantName: "A", CreateTeam: true, TeamName: "   ",
			},
			field: "team_name",
		},
		{
			name: "malformed member email",
			request: &service.RegisterParticipationRequest{
				EventID: suite.event.ID, ParticipantName: "A", IsTeamLeader: true, TeamName: "T", MemberEmails: "a@x.com, not-an-email",
			},
			field: "member_emails",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			result, err := suite.participationService.Register(suite.ctx, leaderID, tc.request)

			assert.Nil(suite.T(), result)
			require.Error(suite.T(), err)
			assert.Equal(suite.T(), apperrors.KindValidation, apperrors.Kind(err))
			var verr *apperrors.ValidationError
			require.True(suite.T(), errors.As(err, &verr))
			assert.Equal(suite.T(), tc.field, verr.Field)
		})
	}
}

func (suite *ParticipationServiceTestSuite) TestRegister_EventNotFound() {
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), suite.event.ID).Return(nil, gorm.ErrRecordNotFound)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(3), ""))

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrEventNotFound)
}

func (suite *ParticipationServiceTestSuite) TestRegister_RegistrationClosed() {
	suite.now = suite.event.RegistrationDeadline.Add(time.Minute)
	suite.expectEvent()

	result, err := suite.participationService.Register(suite.ctx, leaderID, &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Late",
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrRegistrationClosed)
}

func (suite *ParticipationServiceTestSuite) TestRegister_EventCompleted() {
	suite.event.EventStatus = models.EventStatusCompleted
	suite.expectEvent()

	_, err := suite.participationService.Register(suite.ctx, leaderID, &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Late",
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrEventCompleted)
}

// Individual registration creates one row without team and without leader flag
func (suite *ParticipationServiceTestSuite) TestRegister_Individual() {
	suite.expectEvent()
	suite.expectProfile("user_solo")
	suite.expectTransaction()
	suite.expectNotRegistered("user_solo")
	var rows []models.EventParticipation
	suite.expectInsert(&rows)

	result, err := suite.participationService.Register(suite.ctx, "user_solo", &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Solo",
		MemberEmails:    "ignored@x.com",
	})

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), result.TeamID)
	assert.Equal(suite.T(), int64(1), result.Registered)
	assert.False(suite.T(), result.AlreadyRegistered)
	require.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), "user_solo", rows[0].UserID)
	assert.Equal(suite.T(), suite.event.ID, rows[0].EventID)
	assert.Nil(suite.T(), rows[0].TeamID)
	assert.False(suite.T(), rows[0].IsTeamLeader)
}

// Registering twice for the same event is a no-op
func (suite *ParticipationServiceTestSuite) TestRegister_IndividualAlreadyRegistered() {
	suite.expectEvent()
	suite.expectProfile("user_solo")
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().
		GetByUserAndEvent(gomock.Any(), "user_solo", suite.event.ID).
		Return(&models.EventParticipation{UserID: "user_solo", EventID: suite.event.ID}, nil)

	result, err := suite.participationService.Register(suite.ctx, "user_solo", &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Solo",
	})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.AlreadyRegistered)
	assert.Equal(suite.T(), int64(0), result.Registered)
}

// Leader with capacity 3 and two resolvable emails gets three rows and a team of capacity 3
func (suite *ParticipationServiceTestSuite) TestRegister_TeamWithResolvedMembers() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"a@x.com", "b@x.com"}, false).
		Return([]models.User{{ID: "user_a", Email: "a@x.com"}, {ID: "user_b", Email: "b@x.com"}}, nil)
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	var rows []models.EventParticipation
	suite.expectInsert(&rows)
	suite.expectVerify(&teamID, &team, 3)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(3), "a@x.com,b@x.com"))

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result.TeamID)
	assert.Equal(suite.T(), teamID, *result.TeamID)
	assert.Equal(suite.T(), int64(3), result.Registered)
	assert.Empty(suite.T(), result.UnresolvedEmails)

	assert.Equal(suite.T(), "Byte Busters", team.TeamName)
	assert.Equal(suite.T(), 3, team.MaxMembers)
	assert.Equal(suite.T(), leaderID, team.CreatedBy)
	assert.Equal(suite.T(), suite.event.ID, team.EventID)

	require.Len(suite.T(), rows, 3)
	leaders := 0
	for _, row := range rows {
		require.NotNil(suite.T(), row.TeamID)
		assert.Equal(suite.T(), teamID, *row.TeamID)
		if row.IsTeamLeader {
			leaders++
			assert.Equal(suite.T(), leaderID, row.UserID)
		}
	}
	assert.Equal(suite.T(), 1, leaders)
}

// Leader with capacity 2 and two resolvable emails is rejected before anything is written
func (suite *ParticipationServiceTestSuite) TestRegister_TeamOverCapacity() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"a@x.com", "b@x.com"}, false).
		Return([]models.User{{ID: "user_a", Email: "a@x.com"}, {ID: "user_b", Email: "b@x.com"}}, nil)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(2), "a@x.com,b@x.com"))

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), apperrors.IsCapacityExceeded(err))
	var capErr *apperrors.CapacityExceededError
	require.True(suite.T(), errors.As(err, &capErr))
	assert.Equal(suite.T(), 2, capErr.Limit)
	assert.Equal(suite.T(), 3, capErr.Count)
}

// Unknown emails are reported back, the team is formed with the leader alone
func (suite *ParticipationServiceTestSuite) TestRegister_UnknownEmailLeavesLeaderOnly() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"unknown@x.com"}, false).
		Return([]models.User{}, nil)
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	var rows []models.EventParticipation
	suite.expectInsert(&rows)
	suite.expectVerify(&teamID, &team, 1)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(nil, "unknown@x.com"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"unknown@x.com"}, result.UnresolvedEmails)
	require.Len(suite.T(), rows, 1)
	assert.Equal(suite.T(), leaderID, rows[0].UserID)
	assert.True(suite.T(), rows[0].IsTeamLeader)
	assert.Equal(suite.T(), 0, team.MaxMembers)
}

// A member email that resolves to the caller does not count twice
func (suite *ParticipationServiceTestSuite) TestRegister_CallerEmailNotDoubleCounted() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"leader@x.com", "a@x.com"}, false).
		Return([]models.User{{ID: leaderID, Email: "leader@x.com"}, {ID: "user_a", Email: "a@x.com"}}, nil)
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	var rows []models.EventParticipation
	suite.expectInsert(&rows)
	suite.expectVerify(&teamID, &team, 2)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(2), "leader@x.com, a@x.com, a@x.com"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), result.Registered)
	require.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), leaderID, rows[0].UserID)
	assert.Equal(suite.T(), "user_a", rows[1].UserID)
}

// Emails match regardless of case by default
func (suite *ParticipationServiceTestSuite) TestRegister_EmailMatchingIgnoresCase() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"Alice@X.com"}, false).
		Return([]models.User{{ID: "user_alice", Email: "alice@x.com"}}, nil)
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	var rows []models.EventParticipation
	suite.expectInsert(&rows)
	suite.expectVerify(&teamID, &team, 2)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(2), "Alice@X.com"))

	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), result.UnresolvedEmails)
	require.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), "user_alice", rows[1].UserID)
}

// With exact matching enabled a differently cased email stays unresolved
func (suite *ParticipationServiceTestSuite) TestRegister_CaseSensitiveMatching() {
	strict := service.NewParticipationService(suite.repos, suite.mockTx, service.NewValidator(), true).
		WithClock(func() time.Time { return suite.now })

	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"Alice@X.com"}, true).
		Return([]models.User{{ID: "user_alice", Email: "alice@x.com"}}, nil)
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	var rows []models.EventParticipation
	suite.expectInsert(&rows)
	suite.expectVerify(&teamID, &team, 1)

	result, err := strict.Register(suite.ctx, leaderID, suite.teamRequest(nil, "Alice@X.com"))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"Alice@X.com"}, result.UnresolvedEmails)
	assert.Len(suite.T(), rows, 1)
}

// Without an explicit size the event's maximum team size is the capacity
func (suite *ParticipationServiceTestSuite) TestRegister_CapacityFromEvent() {
	suite.event.MaxTeamSize = intPtr(2)
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), gomock.Any(), false).
		Return([]models.User{{ID: "user_a", Email: "a@x.com"}, {ID: "user_b", Email: "b@x.com"}}, nil)

	_, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(nil, "a@x.com,b@x.com"))

	assert.True(suite.T(), apperrors.IsCapacityExceeded(err))
}

func (suite *ParticipationServiceTestSuite) TestRegister_CapacityAboveEventLimit() {
	suite.event.MaxTeamSize = intPtr(4)
	suite.expectEvent()

	_, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(5), ""))

	assert.ErrorIs(suite.T(), err, apperrors.ErrTeamCapacityAboveEvent)
}

// A leader who is already registered cannot open a second team for the same event
func (suite *ParticipationServiceTestSuite) TestRegister_LeaderAlreadyRegistered() {
	suite.expectEvent()
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().
		GetByUserAndEvent(gomock.Any(), leaderID, suite.event.ID).
		Return(&models.EventParticipation{UserID: leaderID, EventID: suite.event.ID}, nil)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(3), ""))

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAlreadyRegisteredTeam)
	assert.Contains(suite.T(), err.Error(), "already_registered")
}

// The locked re-count inside the transaction rejects an overfull team
func (suite *ParticipationServiceTestSuite) TestRegister_RecountInsideTransaction() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().
		GetByEmails(gomock.Any(), []string{"a@x.com"}, false).
		Return([]models.User{{ID: "user_a", Email: "a@x.com"}}, nil)
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	var rows []models.EventParticipation
	suite.expectInsert(&rows)
	suite.mockTeamRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID) (*models.Team, error) { return team, nil })
	suite.mockParticipationRepo.EXPECT().CountByTeamID(gomock.Any(), gomock.Any()).Return(int64(3), nil)

	result, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(2), "a@x.com"))

	assert.Nil(suite.T(), result)
	var capErr *apperrors.CapacityExceededError
	require.True(suite.T(), errors.As(err, &capErr))
	assert.Equal(suite.T(), 3, capErr.Count)
}

// A concurrent registration of the leader surfaces as a validation failure and rolls back
func (suite *ParticipationServiceTestSuite) TestRegister_LeaderRowTakenConcurrently() {
	suite.expectEvent()
	suite.expectProfile(leaderID)
	suite.expectTransaction()
	suite.expectNotRegistered(leaderID)
	var teamID uuid.UUID
	var team *models.Team
	suite.expectTeamCreate(&teamID, &team)
	suite.mockParticipationRepo.EXPECT().CreateSkipDuplicates(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	suite.mockTeamRepo.EXPECT().
		GetByIDForUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uuid.UUID) (*models.Team, error) { return team, nil })
	suite.mockParticipationRepo.EXPECT().CountByTeamID(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	suite.mockParticipationRepo.EXPECT().
		GetByUserAndEvent(gomock.Any(), leaderID, suite.event.ID).
		Return(&models.EventParticipation{UserID: leaderID, EventID: suite.event.ID}, nil)

	_, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(3), ""))

	assert.ErrorIs(suite.T(), err, apperrors.ErrLeaderAlreadyRegistered)
}

func (suite *ParticipationServiceTestSuite) TestRegister_PersistenceFailure() {
	suite.expectEvent()
	suite.expectProfile("user_solo")
	suite.expectTransaction()
	suite.expectNotRegistered("user_solo")
	dbErr := errors.New("connection refused")
	suite.mockParticipationRepo.EXPECT().CreateSkipDuplicates(gomock.Any(), gomock.Any()).Return(int64(0), dbErr)

	result, err := suite.participationService.Register(suite.ctx, "user_solo", &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Solo",
	})

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), apperrors.KindPersistence, apperrors.Kind(err))
	assert.ErrorIs(suite.T(), err, dbErr)
	assert.NotContains(suite.T(), err.Error(), "connection refused")
}

// A caller without a profile row is told to create one instead of hitting the foreign key
func (suite *ParticipationServiceTestSuite) TestRegister_ProfileRequired() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), "user_new").Return(nil, gorm.ErrRecordNotFound)

	result, err := suite.participationService.Register(suite.ctx, "user_new", &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "New",
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrProfileRequired)
	assert.Equal(suite.T(), apperrors.KindValidation, apperrors.Kind(err))
}

func (suite *ParticipationServiceTestSuite) TestRegister_ProfileLookupFailure() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().GetByID(gomock.Any(), "user_solo").Return(nil, errors.New("timeout"))

	_, err := suite.participationService.Register(suite.ctx, "user_solo", &service.RegisterParticipationRequest{
		EventID:         suite.event.ID,
		ParticipantName: "Solo",
	})

	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *ParticipationServiceTestSuite) TestRegister_EmailLookupFailure() {
	suite.expectEvent()
	suite.mockUserRepo.EXPECT().GetByEmails(gomock.Any(), gomock.Any(), false).Return(nil, errors.New("timeout"))

	_, err := suite.participationService.Register(suite.ctx, leaderID, suite.teamRequest(intPtr(3), "a@x.com"))

	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *ParticipationServiceTestSuite) leaderParticipation(teamID uuid.UUID) *models.EventParticipation {
	return &models.EventParticipation{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		UserID:       leaderID,
		EventID:      suite.event.ID,
		TeamID:       &teamID,
		IsTeamLeader: true,
	}
}

func (suite *ParticipationServiceTestSuite) existingTeam(maxMembers int) *models.Team {
	return &models.Team{
		BaseModel:  models.BaseModel{ID: uuid.New()},
		TeamName:   "Byte Busters",
		EventID:    suite.event.ID,
		CreatedBy:  leaderID,
		MaxMembers: maxMembers,
	}
}

// Shrinking a team below its member count fails and keeps the old capacity
func (suite *ParticipationServiceTestSuite) TestUpdate_CapacityBelowMemberCount() {
	team := suite.existingTeam(4)
	p := suite.leaderParticipation(team.ID)
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	suite.mockTeamRepo.EXPECT().GetByIDForUpdate(gomock.Any(), team.ID).Return(team, nil)
	suite.mockParticipationRepo.EXPECT().CountByTeamID(gomock.Any(), team.ID).Return(int64(3), nil)

	result, err := suite.participationService.Update(suite.ctx, leaderID, p.ID, &service.UpdateParticipationRequest{
		MaxTeamSize: intPtr(2),
	})

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), apperrors.IsCapacityExceeded(err))
	assert.Equal(suite.T(), 4, team.MaxMembers)
}

func (suite *ParticipationServiceTestSuite) TestUpdate_LeaderEditsTeam() {
	team := suite.existingTeam(4)
	p := suite.leaderParticipation(team.ID)
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	suite.mockTeamRepo.EXPECT().GetByIDForUpdate(gomock.Any(), team.ID).Return(team, nil)
	suite.mockParticipationRepo.EXPECT().CountByTeamID(gomock.Any(), team.ID).Return(int64(3), nil)
	suite.mockTeamRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, updated *models.Team) error {
			assert.Equal(suite.T(), "Null Pointers", updated.TeamName)
			assert.Equal(suite.T(), 3, updated.MaxMembers)
			return nil
		})

	result, err := suite.participationService.Update(suite.ctx, leaderID, p.ID, &service.UpdateParticipationRequest{
		TeamName:    strPtr(" Null Pointers "),
		MaxTeamSize: intPtr(3),
	})

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result.Team)
	assert.Equal(suite.T(), 3, result.Team.MaxMembers)
}

// A blank team name is rejected before anything is loaded or written
func (suite *ParticipationServiceTestSuite) TestUpdate_BlankTeamName() {
	result, err := suite.participationService.Update(suite.ctx, leaderID, uuid.New(), &service.UpdateParticipationRequest{
		TeamName: strPtr("   "),
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTeamNameRequired)
}

// Removing the size limit needs no member count
func (suite *ParticipationServiceTestSuite) TestUpdate_RemoveLimit() {
	team := suite.existingTeam(4)
	p := suite.leaderParticipation(team.ID)
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	suite.mockTeamRepo.EXPECT().GetByIDForUpdate(gomock.Any(), team.ID).Return(team, nil)
	suite.mockTeamRepo.EXPECT().Update(gomock.Any(), team).Return(nil)

	result, err := suite.participationService.Update(suite.ctx, leaderID, p.ID, &service.UpdateParticipationRequest{
		MaxTeamSize: intPtr(0),
	})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, result.Team.MaxMembers)
}

func (suite *ParticipationServiceTestSuite) TestUpdate_MemberCannotEditTeam() {
	team := suite.existingTeam(4)
	member := &models.EventParticipation{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    "user_member",
		EventID:   suite.event.ID,
		TeamID:    &team.ID,
	}
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), member.ID).Return(member, nil)
	suite.mockTeamRepo.EXPECT().GetByIDForUpdate(gomock.Any(), team.ID).Return(team, nil)

	_, err := suite.participationService.Update(suite.ctx, "user_member", member.ID, &service.UpdateParticipationRequest{
		TeamName: strPtr("Hijacked"),
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotTeamLeader)
}

func (suite *ParticipationServiceTestSuite) TestUpdate_OtherUsersParticipation() {
	p := suite.leaderParticipation(uuid.New())
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)

	_, err := suite.participationService.Update(suite.ctx, "user_intruder", p.ID, &service.UpdateParticipationRequest{
		IsTeamLeader: boolPtr(false),
	})

	assert.ErrorIs(suite.T(), err, apperrors.ErrParticipationNotFound)
}

func (suite *ParticipationServiceTestSuite) TestUpdate_ToggleLeaderFlagWithoutTeam() {
	p := &models.EventParticipation{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    "user_solo",
		EventID:   suite.event.ID,
	}
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	suite.mockParticipationRepo.EXPECT().UpdateLeaderFlag(gomock.Any(), p.ID, true).Return(nil)

	result, err := suite.participationService.Update(suite.ctx, "user_solo", p.ID, &service.UpdateParticipationRequest{
		IsTeamLeader: boolPtr(true),
		TeamName:     strPtr("No team to rename"),
	})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.IsTeamLeader)
}

func (suite *ParticipationServiceTestSuite) TestUpdate_Unauthenticated() {
	_, err := suite.participationService.Update(suite.ctx, "", uuid.New(), &service.UpdateParticipationRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthenticated)
}

// A member leaving keeps the team and the other registrations
func (suite *ParticipationServiceTestSuite) TestWithdraw_MemberLeavesTeamIntact() {
	teamID := uuid.New()
	member := &models.EventParticipation{
		BaseModel: models.BaseModel{ID: uuid.New()},
		UserID:    "user_member",
		EventID:   suite.event.ID,
		TeamID:    &teamID,
	}
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), member.ID).Return(member, nil)
	suite.mockParticipationRepo.EXPECT().Delete(gomock.Any(), member.ID).Return(nil)

	result, err := suite.participationService.Withdraw(suite.ctx, "user_member", member.ID)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.TeamDissolved)
	assert.Equal(suite.T(), int64(0), result.DetachedMembers)
}

// The leader leaving deletes the team and detaches the remaining members
func (suite *ParticipationServiceTestSuite) TestWithdraw_LeaderDissolvesTeam() {
	teamID := uuid.New()
	p := suite.leaderParticipation(teamID)
	suite.expectTransaction()
	gomock.InOrder(
		suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil),
		suite.mockParticipationRepo.EXPECT().Delete(gomock.Any(), p.ID).Return(nil),
		suite.mockParticipationRepo.EXPECT().DetachTeam(gomock.Any(), teamID).Return(int64(2), nil),
		suite.mockTeamRepo.EXPECT().Delete(gomock.Any(), teamID).Return(nil),
	)

	result, err := suite.participationService.Withdraw(suite.ctx, leaderID, p.ID)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.TeamDissolved)
	assert.Equal(suite.T(), int64(2), result.DetachedMembers)
}

func (suite *ParticipationServiceTestSuite) TestWithdraw_NotFound() {
	id := uuid.New()
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	result, err := suite.participationService.Withdraw(suite.ctx, leaderID, id)

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), apperrors.KindNotFound, apperrors.Kind(err))
}

func (suite *ParticipationServiceTestSuite) TestWithdraw_TeamDeleteFailureRollsBack() {
	teamID := uuid.New()
	p := suite.leaderParticipation(teamID)
	suite.expectTransaction()
	suite.mockParticipationRepo.EXPECT().GetByID(gomock.Any(), p.ID).Return(p, nil)
	suite.mockParticipationRepo.EXPECT().Delete(gomock.Any(), p.ID).Return(nil)
	suite.mockParticipationRepo.EXPECT().DetachTeam(gomock.Any(), teamID).Return(int64(1), nil)
	suite.mockTeamRepo.EXPECT().Delete(gomock.Any(), teamID).Return(errors.New("deadlock detected"))

	_, err := suite.participationService.Withdraw(suite.ctx, leaderID, p.ID)

	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *ParticipationServiceTestSuite) TestListMine() {
	ps := []models.EventParticipation{{UserID: leaderID, EventID: suite.event.ID}}
	suite.mockParticipationRepo.EXPECT().GetByUserID(gomock.Any(), leaderID).Return(ps, nil)

	result, err := suite.participationService.ListMine(suite.ctx, leaderID)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)

	_, err = suite.participationService.ListMine(suite.ctx, "")
	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthenticated)
}

func (suite *ParticipationServiceTestSuite) TestListByEvent_EventNotFound() {
	id := uuid.New()
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.participationService.ListByEvent(suite.ctx, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrEventNotFound)
}

func (suite *ParticipationServiceTestSuite) TestGetTeam() {
	team := suite.existingTeam(3)
	members := []models.EventParticipation{
		*suite.leaderParticipation(team.ID),
		{UserID: "user_a", EventID: suite.event.ID, TeamID: &team.ID},
	}
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), team.ID).Return(team, nil)
	suite.mockParticipationRepo.EXPECT().GetByTeamID(gomock.Any(), team.ID).Return(members, nil)

	detail, err := suite.participationService.GetTeam(suite.ctx, team.ID)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), team, detail.Team)
	assert.Len(suite.T(), detail.Members, 2)
}

func (suite *ParticipationServiceTestSuite) TestGetTeam_NotFound() {
	id := uuid.New()
	suite.mockTeamRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.participationService.GetTeam(suite.ctx, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrTeamNotFound)
}

// TestParticipationServiceTestSuite runs the test suite
func TestParticipationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ParticipationServiceTestSuite))
}
