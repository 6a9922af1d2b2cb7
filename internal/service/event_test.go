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

// EventServiceTestSuite defines the test suite for EventService
type EventServiceTestSuite struct {
	suite.Suite
	ctrl                  *gomock.Controller
	mockEventRepo         *mocks.MockEventRepositoryInterface
	mockTeamRepo          *mocks.MockTeamRepositoryInterface
	mockParticipationRepo *mocks.MockParticipationRepositoryInterface
	mockTx                *mocks.MockTransactorInterface
	eventService          *service.EventService
	ctx                   context.Context
}

// SetupTest sets up the test suite
func (suite *EventServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockEventRepo = mocks.NewMockEventRepositoryInterface(suite.ctrl)
	suite.mockTeamRepo = mocks.NewMockTeamRepositoryInterface(suite.ctrl)
	suite.mockParticipationRepo = mocks.NewMockParticipationRepositoryInterface(suite.ctrl)
	suite.mockTx = mocks.NewMockTransactorInterface(suite.ctrl)
	suite.eventService = service.NewEventService(suite.mockEventRepo, suite.mockTx, service.NewValidator())
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *EventServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func validEventRequest() *service.EventRequest {
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	deadline := date.Add(-24 * time.Hour)
	link := "https://register.example.com/hackfest"
	size := 4
	return &service.EventRequest{
		Title:                "HackFest",
		Description:          "24 hour hackathon",
		Date:                 date,
		StartTime:            date.Add(9 * time.Hour),
		EndTime:              date.Add(21 * time.Hour),
		Venue:                "Auditorium 1",
		RegistrationLink:     &link,
		MaxTeamSize:          &size,
		RegistrationDeadline: &deadline,
		Category:             models.CategoryHackathon,
	}
}

func (suite *EventServiceTestSuite) TestCreate_Success() {
	suite.mockEventRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	event, err := suite.eventService.Create(suite.ctx, "user_org", validEventRequest())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user_org", event.OrganiserUserID)
	assert.Equal(suite.T(), models.EventStatusUpcoming, event.EventStatus)
	assert.Equal(suite.T(), models.VisibilityPublic, event.Visibility)
	require.NotNil(suite.T(), event.RegistrationLink)
	assert.Equal(suite.T(), 4, *event.MaxTeamSize)
}

func (suite *EventServiceTestSuite) TestCreate_CustomFormClearsRegistrationLink() {
	suite.mockEventRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	req := validEventRequest()
	req.UseCustomForm = true

	event, err := suite.eventService.Create(suite.ctx, "user_org", req)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), event.UseCustomForm)
	assert.Nil(suite.T(), event.RegistrationLink)
}

func (suite *EventServiceTestSuite) TestCreate_Validation() {
	testCases := []struct {
		name   string
		mutate func(r *service.EventRequest)
		field  string
	}{
		{"missing title", func(r *service.EventRequest) { r.Title = "" }, "title"},
		{"end before start", func(r *service.EventRequest) { r.EndTime = r.StartTime.Add(-time.Hour) }, "end_time"},
		{"unknown category", func(r *service.EventRequest) { r.Category = "KARAOKE" }, "category"},
		{"unknown visibility", func(r *service.EventRequest) { r.Visibility = "SECRET" }, "visibility"},
		{"deadline after event date", func(r *service.EventRequest) {
			late := r.Date.Add(time.Hour)
			r.RegistrationDeadline = &late
		}, "registration_deadline"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := validEventRequest()
			tc.mutate(req)

			_, err := suite.eventService.Create(suite.ctx, "user_org", req)

			var verr *apperrors.ValidationError
			require.True(suite.T(), errors.As(err, &verr))
			assert.Equal(suite.T(), tc.field, verr.Field)
		})
	}
}

func (suite *EventServiceTestSuite) TestUpdate_NotOrganiser() {
	id := uuid.New()
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Event{
		BaseModel:       models.BaseModel{ID: id},
		OrganiserUserID: "user_org",
	}, nil)

	_, err := suite.eventService.Update(suite.ctx, "user_other", id, validEventRequest())

	assert.ErrorIs(suite.T(), err, apperrors.ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestUpdate_Success() {
	id := uuid.New()
	existing := &models.Event{BaseModel: models.BaseModel{ID: id}, OrganiserUserID: "user_org", Title: "Old"}
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), id).Return(existing, nil)
	suite.mockEventRepo.EXPECT().Update(gomock.Any(), existing).Return(nil)

	event, err := suite.eventService.Update(suite.ctx, "user_org", id, validEventRequest())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "HackFest", event.Title)
	assert.Equal(suite.T(), "user_org", event.OrganiserUserID)
}

func (suite *EventServiceTestSuite) TestGet_NotFound() {
	id := uuid.New()
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.eventService.Get(suite.ctx, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrEventNotFound)
}

// Deleting an event removes registrations, then teams, then the event in one transaction
func (suite *EventServiceTestSuite) TestDelete_Cascades() {
	id := uuid.New()
	repos := repository.Repositories{
		Events:         suite.mockEventRepo,
		Teams:          suite.mockTeamRepo,
		Participations: suite.mockParticipationRepo,
	}
	suite.mockTx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(repository.Repositories) error) error { return fn(repos) })
	gomock.InOrder(
		suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Event{BaseModel: models.BaseModel{ID: id}, OrganiserUserID: "user_org"}, nil),
		suite.mockParticipationRepo.EXPECT().DeleteByEventID(gomock.Any(), id).Return(int64(5), nil),
		suite.mockTeamRepo.EXPECT().DeleteByEventID(gomock.Any(), id).Return(int64(2), nil),
		suite.mockEventRepo.EXPECT().Delete(gomock.Any(), id).Return(nil),
	)

	err := suite.eventService.Delete(suite.ctx, "user_org", id)

	assert.NoError(suite.T(), err)
}

func (suite *EventServiceTestSuite) TestDelete_FailureIsPersistenceError() {
	id := uuid.New()
	repos := repository.Repositories{
		Events:         suite.mockEventRepo,
		Teams:          suite.mockTeamRepo,
		Participations: suite.mockParticipationRepo,
	}
	suite.mockTx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(repository.Repositories) error) error { return fn(repos) })
	suite.mockEventRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Event{BaseModel: models.BaseModel{ID: id}, OrganiserUserID: "user_org"}, nil)
	suite.mockParticipationRepo.EXPECT().DeleteByEventID(gomock.Any(), id).Return(int64(0), errors.New("lock timeout"))

	err := suite.eventService.Delete(suite.ctx, "user_org", id)

	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *EventServiceTestSuite) TestListMine() {
	suite.mockEventRepo.EXPECT().GetByOrganiser(gomock.Any(), "user_org").Return([]models.Event{{Title: "A"}, {Title: "B"}}, nil)

	events, err := suite.eventService.ListMine(suite.ctx, "user_org")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), events, 2)
}

// TestEventServiceTestSuite runs the test suite
func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}
