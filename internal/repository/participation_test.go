//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"

	"github.com/KartikTulsian/karyasetu/internal/database/models"
	"github.com/KartikTulsian/karyasetu/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ParticipationRepositoryTestSuite tests the ParticipationRepository and TeamRepository together,
// since every team query depends on member rows
type ParticipationRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repos         Repositories
	factories     *testutils.FactorySet
	ctx           context.Context

	event  *models.Event
	leader *models.User
	member *models.User
}

// SetupSuite runs before all tests in the suite
func (suite *ParticipationRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repos = NewRepositories(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
	suite.ctx = context.Background()
}

// TearDownSuite runs after all tests in the suite
func (suite *ParticipationRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest seeds an event with two users
func (suite *ParticipationRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.event = suite.factories.Event.Create()
	suite.Require().NoError(suite.repos.Events.Create(suite.ctx, suite.event))
	suite.leader = suite.factories.User.Create()
	suite.member = suite.factories.User.Create()
	suite.Require().NoError(suite.repos.Users.Create(suite.ctx, suite.leader))
	suite.Require().NoError(suite.repos.Users.Create(suite.ctx, suite.member))
}

// TearDownTest runs after each test
func (suite *ParticipationRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *ParticipationRepositoryTestSuite) createTeam(maxMembers int) *models.Team {
	team := suite.factories.Team.Create(suite.event.ID, suite.leader.ID, maxMembers)
	suite.Require().NoError(suite.repos.Teams.Create(suite.ctx, team))
	return team
}

func (suite *ParticipationRepositoryTestSuite) TestCreateSkipDuplicates() {
	rows := []models.EventParticipation{
		*suite.factories.Participation.Individual(suite.leader.ID, suite.event.ID),
		*suite.factories.Participation.Individual(suite.member.ID, suite.event.ID),
	}

	inserted, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, rows)
	suite.Require().NoError(err)
	suite.Equal(int64(2), inserted)

	again := []models.EventParticipation{
		*suite.factories.Participation.Individual(suite.leader.ID, suite.event.ID),
	}
	inserted, err = suite.repos.Participations.CreateSkipDuplicates(suite.ctx, again)
	suite.Require().NoError(err)
	suite.Equal(int64(0), inserted)

	all, err := suite.repos.Participations.GetByEventID(suite.ctx, suite.event.ID)
	suite.Require().NoError(err)
	suite.Len(all, 2)
}

func (suite *ParticipationRepositoryTestSuite) TestCreateSkipDuplicatesEmpty() {
	inserted, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, nil)
	suite.NoError(err)
	suite.Zero(inserted)
}

func (suite *ParticipationRepositoryTestSuite) TestTeamMembership() {
	team := suite.createTeam(3)
	rows := []models.EventParticipation{
		*suite.factories.Participation.Member(suite.member.ID, team),
		*suite.factories.Participation.Member(suite.leader.ID, team),
	}
	_, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, rows)
	suite.Require().NoError(err)

	count, err := suite.repos.Participations.CountByTeamID(suite.ctx, team.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	members, err := suite.repos.Participations.GetByTeamID(suite.ctx, team.ID)
	suite.Require().NoError(err)
	suite.Require().Len(members, 2)
	suite.Equal(suite.leader.ID, members[0].UserID, "leader is listed first")
	suite.Require().NotNil(members[0].User)
	suite.Equal(suite.leader.Email, members[0].User.Email)

	locked, err := suite.repos.Teams.GetByIDForUpdate(suite.ctx, team.ID)
	suite.Require().NoError(err)
	suite.Equal(3, locked.MaxMembers)

	teams, err := suite.repos.Teams.GetByEventID(suite.ctx, suite.event.ID)
	suite.Require().NoError(err)
	suite.Require().Len(teams, 1)
	suite.Equal(team.ID, teams[0].ID)
}

func (suite *ParticipationRepositoryTestSuite) TestGetByIDPreloadsTeam() {
	team := suite.createTeam(0)
	row := suite.factories.Participation.Member(suite.leader.ID, team)
	_, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, []models.EventParticipation{*row})
	suite.Require().NoError(err)

	found, err := suite.repos.Participations.GetByID(suite.ctx, row.ID)
	suite.Require().NoError(err)
	suite.True(found.IsTeamLeader)
	suite.Require().NotNil(found.Team)
	suite.Equal(team.TeamName, found.Team.TeamName)

	byPair, err := suite.repos.Participations.GetByUserAndEvent(suite.ctx, suite.leader.ID, suite.event.ID)
	suite.Require().NoError(err)
	suite.Equal(row.ID, byPair.ID)

	mine, err := suite.repos.Participations.GetByUserID(suite.ctx, suite.leader.ID)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Require().NotNil(mine[0].Event)
	suite.Equal(suite.event.Title, mine[0].Event.Title)
}

func (suite *ParticipationRepositoryTestSuite) TestUpdateLeaderFlag() {
	row := suite.factories.Participation.Individual(suite.member.ID, suite.event.ID)
	_, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, []models.EventParticipation{*row})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repos.Participations.UpdateLeaderFlag(suite.ctx, row.ID, true))
	found, err := suite.repos.Participations.GetByID(suite.ctx, row.ID)
	suite.Require().NoError(err)
	suite.True(found.IsTeamLeader)

	suite.ErrorIs(suite.repos.Participations.UpdateLeaderFlag(suite.ctx, uuid.New(), true), gorm.ErrRecordNotFound)
}

func (suite *ParticipationRepositoryTestSuite) TestDetachTeam() {
	team := suite.createTeam(2)
	rows := []models.EventParticipation{
		*suite.factories.Participation.Member(suite.leader.ID, team),
		*suite.factories.Participation.Member(suite.member.ID, team),
	}
	_, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, rows)
	suite.Require().NoError(err)

	detached, err := suite.repos.Participations.DetachTeam(suite.ctx, team.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), detached)

	suite.Require().NoError(suite.repos.Teams.Delete(suite.ctx, team.ID))

	all, err := suite.repos.Participations.GetByEventID(suite.ctx, suite.event.ID)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	for _, p := range all {
		suite.Nil(p.TeamID)
		suite.False(p.IsTeamLeader)
	}
}

func (suite *ParticipationRepositoryTestSuite) TestTeamDeleteSetsNullOnMembers() {
	team := suite.createTeam(0)
	row := suite.factories.Participation.Member(suite.member.ID, team)
	_, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, []models.EventParticipation{*row})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repos.Teams.Delete(suite.ctx, team.ID))

	found, err := suite.repos.Participations.GetByID(suite.ctx, row.ID)
	suite.Require().NoError(err)
	suite.Nil(found.TeamID)
	suite.ErrorIs(suite.repos.Teams.Delete(suite.ctx, team.ID), gorm.ErrRecordNotFound)
}

func (suite *ParticipationRepositoryTestSuite) TestDeleteByEventID() {
	team := suite.createTeam(0)
	rows := []models.EventParticipation{
		*suite.factories.Participation.Member(suite.leader.ID, team),
		*suite.factories.Participation.Individual(suite.member.ID, suite.event.ID),
	}
	_, err := suite.repos.Participations.CreateSkipDuplicates(suite.ctx, rows)
	suite.Require().NoError(err)

	deleted, err := suite.repos.Participations.DeleteByEventID(suite.ctx, suite.event.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)

	teams, err := suite.repos.Teams.DeleteByEventID(suite.ctx, suite.event.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(1), teams)

	suite.ErrorIs(suite.repos.Participations.Delete(suite.ctx, rows[1].ID), gorm.ErrRecordNotFound)
}

// TestParticipationRepositoryTestSuite runs the test suite
func TestParticipationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ParticipationRepositoryTestSuite))
}
