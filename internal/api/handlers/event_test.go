package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/KartikTulsian/karyasetu/internal/api/handlers"
	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/mocks"
	"github.com/KartikTulsian/karyasetu/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// EventHandlerTestSuite defines the test suite for EventHandler
type EventHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockEventServiceInterface
	handler     *handlers.EventHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *EventHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockEventServiceInterface(suite.ctrl)
	suite.handler = handlers.NewEventHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	events := suite.httpSuite.Router.Group("/api/v1/events", testutils.AsCaller("user_org"))
	{
		events.POST("", suite.handler.CreateEvent)
		events.GET("/mine", suite.handler.ListMyEvents)
		events.GET("/:id", suite.handler.GetEvent)
		events.PUT("/:id", suite.handler.UpdateEvent)
		events.DELETE("/:id", suite.handler.DeleteEvent)
	}
}

// TearDownTest cleans up after each test
func (suite *EventHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func eventBody() map[string]interface{} {
	date := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	return map[string]interface{}{
		"title":         "HackFest",
		"description":   "24 hour hackathon",
		"date":          date.Format(time.RFC3339),
		"start_time":    date.Add(9 * time.Hour).Format(time.RFC3339),
		"end_time":      date.Add(21 * time.Hour).Format(time.RFC3339),
		"venue":         "Auditorium",
		"max_team_size": 4,
		"category":      "HACKATHON",
	}
}

func (suite *EventHandlerTestSuite) TestCreateEvent() {
	id := uuid.New()
	suite.mockService.EXPECT().
		Create(gomock.Any(), "user_org", gomock.Any()).
		Return(&models.Event{BaseModel: models.BaseModel{ID: id}, Title: "HackFest", OrganiserUserID: "user_org"}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/events", eventBody())

	var response struct {
		Success bool         `json:"success"`
		Data    models.Event `json:"data"`
	}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
	assert.Equal(suite.T(), id, response.Data.ID)
}

func (suite *EventHandlerTestSuite) TestGetEvent() {
	id := uuid.New()

	suite.mockService.EXPECT().Get(gomock.Any(), id).Return(&models.Event{BaseModel: models.BaseModel{ID: id}}, nil)
	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/events/"+id.String(), nil)
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)

	recorder = suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/events/nope", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, apperrors.KindValidation, "invalid event ID")
}

func (suite *EventHandlerTestSuite) TestListMyEvents() {
	suite.mockService.EXPECT().ListMine(gomock.Any(), "user_org").Return([]models.Event{{Title: "A"}}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/events/mine", nil)

	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)
}

func (suite *EventHandlerTestSuite) TestUpdateAndDeleteEvent() {
	id := uuid.New()

	suite.mockService.EXPECT().Update(gomock.Any(), "user_org", id, gomock.Any()).Return(nil, apperrors.ErrEventNotFound)
	recorder := suite.httpSuite.MakeRequest(http.MethodPut, "/api/v1/events/"+id.String(), eventBody())
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, apperrors.KindNotFound, "event not found")

	suite.mockService.EXPECT().Delete(gomock.Any(), "user_org", id).Return(nil)
	recorder = suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/events/"+id.String(), nil)
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)
}

// TestEventHandlerTestSuite runs the test suite
func TestEventHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EventHandlerTestSuite))
}
