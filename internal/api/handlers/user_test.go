package handlers_test

import (
	"net/http"
	"testing"

	"github.com/KartikTulsian/karyasetu/internal/api/handlers"
	"github.com/KartikTulsian/karyasetu/internal/database/models"
	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/mocks"
	"github.com/KartikTulsian/karyasetu/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockUserServiceInterface
	handler     *handlers.UserHandler
	httpSuite   *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *UserHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.handler = handlers.NewUserHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()

	users := suite.httpSuite.Router.Group("/api/v1/users", testutils.AsCaller("user_1"))
	{
		users.POST("/me", suite.handler.CreateProfile)
		users.GET("/me", suite.handler.GetMe)
		users.PATCH("/me", suite.handler.UpdateProfile)
		users.DELETE("/me", suite.handler.DeleteProfile)
		users.GET("/:id", suite.handler.GetUser)
	}
}

// TearDownTest cleans up after each test
func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *UserHandlerTestSuite) TestCreateProfile() {
	body := map[string]interface{}{
		"name":         "Asha Roy",
		"email":        "asha@clg.com",
		"college_name": "IEM",
		"course":       "B.Tech",
		"year":         2,
	}

	suite.Run("success", func() {
		suite.mockService.EXPECT().
			CreateProfile(gomock.Any(), "user_1", gomock.Any()).
			Return(&models.User{ID: "user_1", Email: "asha@clg.com", Name: "Asha Roy"}, nil)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/users/me", body)

		var response struct {
			Success bool        `json:"success"`
			Data    models.User `json:"data"`
		}
		testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &response)
		assert.True(suite.T(), response.Success)
		assert.Equal(suite.T(), "user_1", response.Data.ID)
	})

	suite.Run("duplicate email", func() {
		suite.mockService.EXPECT().CreateProfile(gomock.Any(), "user_1", gomock.Any()).Return(nil, apperrors.ErrUserExists)

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/users/me", body)

		testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, apperrors.KindAlreadyExists, "already exists")
	})

	suite.Run("validation", func() {
		suite.mockService.EXPECT().
			CreateProfile(gomock.Any(), "user_1", gomock.Any()).
			Return(nil, apperrors.NewValidationError("year", "must be at most 5"))

		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/users/me", body)

		testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, apperrors.KindValidation, "year")
	})
}

func (suite *UserHandlerTestSuite) TestGetProfiles() {
	suite.mockService.EXPECT().GetProfile(gomock.Any(), "user_1").Return(&models.User{ID: "user_1"}, nil)
	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/users/me", nil)
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)

	suite.mockService.EXPECT().GetProfile(gomock.Any(), "user_9").Return(nil, apperrors.ErrUserNotFound)
	recorder = suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/users/user_9", nil)
	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, apperrors.KindNotFound, "user not found")
}

func (suite *UserHandlerTestSuite) TestUpdateAndDeleteProfile() {
	suite.mockService.EXPECT().UpdateProfile(gomock.Any(), "user_1", gomock.Any()).Return(&models.User{ID: "user_1", Year: 3}, nil)
	recorder := suite.httpSuite.MakeRequest(http.MethodPatch, "/api/v1/users/me", map[string]interface{}{"year": 3})
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)

	suite.mockService.EXPECT().DeleteProfile(gomock.Any(), "user_1").Return(nil)
	recorder = suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/users/me", nil)
	testutils.AssertSuccessResponse(suite.T(), recorder, http.StatusOK)
	assert.Contains(suite.T(), recorder.Body.String(), "Profile deleted")
}

// TestUserHandlerTestSuite runs the test suite
func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
