package service_test

import (
	"context"
	"errors"
	"testing"

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

// ClubServiceTestSuite defines the test suite for ClubService
type ClubServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockEventRepo *mocks.MockEventRepositoryInterface
	mockClubRepo  *mocks.MockClubRepositoryInterface
	mockTx        *mocks.MockTransactorInterface
	repos         repository.Repositories
	clubService   *service.ClubService
	ctx           context.Context
}

// SetupTest sets up the test suite
func (suite *ClubServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockEventRepo = mocks.NewMockEventRepositoryInterface(suite.ctrl)
	suite.mockClubRepo = mocks.NewMockClubRepositoryInterface(suite.ctrl)
	suite.mockTx = mocks.NewMockTransactorInterface(suite.ctrl)
	suite.repos = repository.Repositories{
		Events: suite.mockEventRepo,
		Clubs:  suite.mockClubRepo,
	}
	suite.clubService = service.NewClubService(suite.repos, suite.mockTx, service.NewValidator())
	suite.ctx = context.Background()
}

// TearDownTest cleans up after each test
func (suite *ClubServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ClubServiceTestSuite) expectTransaction() {
	suite.mockTx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(repository.Repositories) error) error {
			return fn(suite.repos)
		})
}

func validClubRequest() *service.ClubRequest {
	return &service.ClubRequest{
		Name:        "Quiz Club",
		CollegeName: "IIT",
	}
}

func TestParseEventLinks(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"trimmed", " HackFest , Quiz Night", []string{"HackFest", "Quiz Night"}},
		{"duplicates ignoring case", "HackFest,hackfest,HACKFEST", []string{"HackFest"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, service.ParseEventLinks(tc.raw))
		})
	}
}

func (suite *ClubServiceTestSuite) TestCreate_LinksOpenEvents() {
	eventID := uuid.New()
	clubID := uuid.New()
	suite.expectTransaction()
	suite.mockClubRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, club *models.Club) error {
			club.ID = clubID
			return nil
		})
	suite.mockEventRepo.EXPECT().
		FindOpenByTitles(gomock.Any(), []string{"HackFest", "Gone"}).
		Return([]models.Event{{BaseModel: models.BaseModel{ID: eventID}, Title: "HackFest"}}, nil)
	suite.mockClubRepo.EXPECT().LinkEvents(gomock.Any(), clubID, []uuid.UUID{eventID}).Return(int64(1), nil)
	suite.mockClubRepo.EXPECT().
		GetEvents(gomock.Any(), clubID).
		Return([]models.Event{{BaseModel: models.BaseModel{ID: eventID}, Title: "HackFest"}}, nil)
	req := validClubRequest()
	req.EventLinks = "HackFest, Gone, hackfest"

	club, err := suite.clubService.Create(suite.ctx, "user_a", req)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user_a", club.CreatedBy)
	require.Len(suite.T(), club.Events, 1)
	assert.Equal(suite.T(), eventID, club.Events[0].ID)
}

func (suite *ClubServiceTestSuite) TestCreate_WithoutLinks() {
	suite.expectTransaction()
	suite.mockClubRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	suite.mockClubRepo.EXPECT().GetEvents(gomock.Any(), gomock.Any()).Return(nil, nil)
	req := validClubRequest()
	req.Description = strPtr("  ")

	club, err := suite.clubService.Create(suite.ctx, "user_a", req)

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), club.Description)
	assert.Empty(suite.T(), club.Events)
}

// A failed link aborts the whole transaction
func (suite *ClubServiceTestSuite) TestCreate_LinkFailure() {
	suite.expectTransaction()
	suite.mockClubRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	suite.mockEventRepo.EXPECT().
		FindOpenByTitles(gomock.Any(), []string{"HackFest"}).
		Return([]models.Event{{BaseModel: models.BaseModel{ID: uuid.New()}}}, nil)
	suite.mockClubRepo.EXPECT().LinkEvents(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))
	req := validClubRequest()
	req.EventLinks = "HackFest"

	club, err := suite.clubService.Create(suite.ctx, "user_a", req)

	assert.Nil(suite.T(), club)
	assert.True(suite.T(), apperrors.IsPersistence(err))
}

func (suite *ClubServiceTestSuite) TestCreate_Validation() {
	testCases := []struct {
		name   string
		mutate func(r *service.ClubRequest)
		field  string
	}{
		{"blank name", func(r *service.ClubRequest) { r.Name = "  " }, "name"},
		{"blank college", func(r *service.ClubRequest) { r.CollegeName = "" }, "college_name"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := validClubRequest()
			tc.mutate(req)

			_, err := suite.clubService.Create(suite.ctx, "user_a", req)

			var verr *apperrors.ValidationError
			require.True(suite.T(), errors.As(err, &verr))
			assert.Equal(suite.T(), tc.field, verr.Field)
		})
	}
}

func (suite *ClubServiceTestSuite) TestCreate_Unauthenticated() {
	_, err := suite.clubService.Create(suite.ctx, "", validClubRequest())

	assert.ErrorIs(suite.T(), err, apperrors.ErrUnauthenticated)
}

func (suite *ClubServiceTestSuite) TestGet_IncludesEvents() {
	id := uuid.New()
	suite.mockClubRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Club{BaseModel: models.BaseModel{ID: id}, Name: "Quiz Club"}, nil)
	suite.mockClubRepo.EXPECT().GetEvents(gomock.Any(), id).Return([]models.Event{{Title: "Quiz Night"}}, nil)

	club, err := suite.clubService.Get(suite.ctx, id)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), club.Events, 1)
}

func (suite *ClubServiceTestSuite) TestGet_NotFound() {
	id := uuid.New()
	suite.mockClubRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	_, err := suite.clubService.Get(suite.ctx, id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrClubNotFound)
}

func (suite *ClubServiceTestSuite) TestList_TrimsCollege() {
	suite.mockClubRepo.EXPECT().List(gomock.Any(), "IIT").Return([]models.Club{{Name: "A"}, {Name: "B"}}, nil)

	clubs, err := suite.clubService.List(suite.ctx, "  IIT ")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), clubs, 2)
}

func (suite *ClubServiceTestSuite) TestUpdate_OnlyCreator() {
	id := uuid.New()
	suite.expectTransaction()
	suite.mockClubRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Club{BaseModel: models.BaseModel{ID: id}, CreatedBy: "user_b"}, nil)

	_, err := suite.clubService.Update(suite.ctx, "user_a", id, validClubRequest())

	assert.ErrorIs(suite.T(), err, apperrors.ErrClubNotFound)
}

func (suite *ClubServiceTestSuite) TestUpdate_ReplacesFields() {
	id := uuid.New()
	suite.expectTransaction()
	suite.mockClubRepo.EXPECT().
		GetByID(gomock.Any(), id).
		Return(&models.Club{BaseModel: models.BaseModel{ID: id}, CreatedBy: "user_a", Name: "Old"}, nil)
	suite.mockClubRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, club *models.Club) error {
			assert.Equal(suite.T(), "Quiz Club", club.Name)
			return nil
		})
	suite.mockClubRepo.EXPECT().GetEvents(gomock.Any(), id).Return(nil, nil)

	club, err := suite.clubService.Update(suite.ctx, "user_a", id, validClubRequest())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "IIT", club.CollegeName)
}

func (suite *ClubServiceTestSuite) TestDelete() {
	id := uuid.New()
	suite.mockClubRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Club{BaseModel: models.BaseModel{ID: id}, CreatedBy: "user_a"}, nil)
	suite.mockClubRepo.EXPECT().Delete(gomock.Any(), id).Return(nil)

	require.NoError(suite.T(), suite.clubService.Delete(suite.ctx, "user_a", id))
}

func (suite *ClubServiceTestSuite) TestDelete_OtherUsersClub() {
	id := uuid.New()
	suite.mockClubRepo.EXPECT().GetByID(gomock.Any(), id).Return(&models.Club{BaseModel: models.BaseModel{ID: id}, CreatedBy: "user_b"}, nil)

	err := suite.clubService.Delete(suite.ctx, "user_a", id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrClubNotFound)
}

// TestClubServiceTestSuite runs the test suite
func TestClubServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClubServiceTestSuite))
}
