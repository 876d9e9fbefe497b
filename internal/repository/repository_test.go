package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/who-owns-this/internal/models"
	"github.com/yukikurage/who-owns-this/internal/testutils"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	ctx     context.Context
	teams   TeamRepository
	members MemberRepository
	tasks   TaskRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.db = testutils.NewSQLiteDB(s.T())
	s.ctx = context.Background()
	s.teams = NewTeamRepository(s.db)
	s.members = NewMemberRepository(s.db)
	s.tasks = NewTaskRepository(s.db)
}

func (s *RepositoryTestSuite) createTeam(name, code string) (*models.Team, *models.Member) {
	leaderID := uuid.NewString()
	team := &models.Team{TeamID: uuid.NewString(), TeamName: name, TeamCode: code, LeaderID: leaderID}
	leader := &models.Member{MemberID: leaderID, Name: "Leader of " + name}
	s.Require().NoError(s.teams.CreateWithLeader(s.ctx, team, leader))
	return team, leader
}

func (s *RepositoryTestSuite) addMember(teamID, name string) *models.Member {
	member := &models.Member{MemberID: uuid.NewString(), Name: name, TeamID: teamID}
	s.Require().NoError(s.members.Create(s.ctx, member))
	return member
}

func (s *RepositoryTestSuite) TestCreateWithLeader() {
	team, leader := s.createTeam("Alpha Squad", "ABC123")

	s.Equal(team.TeamID, leader.TeamID)

	found, err := s.teams.FindByCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(team.TeamID, found.TeamID)
	s.Equal(leader.MemberID, found.LeaderID)

	m, err := s.members.FindByMemberID(s.ctx, team.TeamID, leader.MemberID)
	s.Require().NoError(err)
	s.Equal(leader.Name, m.Name)
}

func (s *RepositoryTestSuite) TestCreateWithLeader_DuplicateCode() {
	s.createTeam("First", "SAME01")

	team := &models.Team{TeamID: uuid.NewString(), TeamName: "Second", TeamCode: "SAME01", LeaderID: "x"}
	err := s.teams.CreateWithLeader(s.ctx, team, &models.Member{MemberID: "x", Name: "Lee"})

	s.Require().Error(err)
	s.True(errors.Is(err, ErrCreateTeam))
	s.True(errors.Is(err, ErrDuplicateKey))
}

func (s *RepositoryTestSuite) TestCreateWithLeader_RollsBackTeamWhenLeaderFails() {
	_, leader := s.createTeam("First", "FIRST1")

	// Reusing a member id violates the member_id unique index.
	team := &models.Team{TeamID: uuid.NewString(), TeamName: "Second", TeamCode: "SECND1", LeaderID: leader.MemberID}
	err := s.teams.CreateWithLeader(s.ctx, team, &models.Member{MemberID: leader.MemberID, Name: "Other"})

	s.Require().Error(err)
	s.True(errors.Is(err, ErrCreateLeader))

	_, err = s.teams.FindByCode(s.ctx, "SECND1")
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *RepositoryTestSuite) TestCodeExists() {
	s.createTeam("Alpha", "EXIST1")

	exists, err := s.teams.CodeExists(s.ctx, "EXIST1")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.teams.CodeExists(s.ctx, "NOPE00")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RepositoryTestSuite) TestFindByTeamID_NotFound() {
	_, err := s.teams.FindByTeamID(s.ctx, "missing")
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *RepositoryTestSuite) TestMemberUniqueness_IsCaseSensitive() {
	team, _ := s.createTeam("Alpha", "CASE01")
	s.addMember(team.TeamID, "Sam")

	err := s.members.Create(s.ctx, &models.Member{MemberID: uuid.NewString(), Name: "Sam", TeamID: team.TeamID})
	s.Require().Error(err)
	s.True(errors.Is(err, ErrDuplicateKey))

	// A case variant passes the storage constraint.
	s.addMember(team.TeamID, "sam")

	// The same name in another team is fine.
	other, _ := s.createTeam("Beta", "CASE02")
	s.addMember(other.TeamID, "Sam")
}

func (s *RepositoryTestSuite) TestFindByNameFold() {
	team, _ := s.createTeam("Alpha", "FOLD01")
	first := s.addMember(team.TeamID, "Sam")
	s.addMember(team.TeamID, "SAM")
	s.addMember(team.TeamID, "abc")

	found, err := s.members.FindByNameFold(s.ctx, team.TeamID, "sAm")
	s.Require().NoError(err)
	s.Equal(first.MemberID, found.MemberID, "earliest registered variant wins")

	for _, pattern := range []string{"a.c", "a%", "a_c", "^abc$"} {
		_, err = s.members.FindByNameFold(s.ctx, team.TeamID, pattern)
		s.True(errors.Is(err, gorm.ErrRecordNotFound), pattern)
	}
}

func (s *RepositoryTestSuite) TestFindByNameFold_NonASCII() {
	team, _ := s.createTeam("Alpha", "FOLD02")
	emile := s.addMember(team.TeamID, "Émile")
	s.Equal("émile", emile.NameKey)
	strasse := s.addMember(team.TeamID, "Straße")

	for _, name := range []string{"émile", "ÉMILE", "éMiLe"} {
		found, err := s.members.FindByNameFold(s.ctx, team.TeamID, name)
		s.Require().NoError(err, name)
		s.Equal(emile.MemberID, found.MemberID, name)
	}

	found, err := s.members.FindByNameFold(s.ctx, team.TeamID, "STRASSE")
	s.Require().NoError(err)
	s.Equal(strasse.MemberID, found.MemberID)

	_, err = s.members.FindByNameFold(s.ctx, team.TeamID, "Emile")
	s.True(errors.Is(err, gorm.ErrRecordNotFound))
}

func (s *RepositoryTestSuite) TestListMembers_RegistrationOrder() {
	team, leader := s.createTeam("Alpha", "LIST01")
	s.addMember(team.TeamID, "Zed")
	s.addMember(team.TeamID, "Amy")

	members, err := s.members.ListByTeam(s.ctx, team.TeamID)
	s.Require().NoError(err)
	s.Require().Len(members, 3)
	s.Equal(leader.MemberID, members[0].MemberID)
	s.Equal("Zed", members[1].Name)
	s.Equal("Amy", members[2].Name)

	empty, err := s.members.ListByTeam(s.ctx, "other")
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *RepositoryTestSuite) TestTasks_OrderAndStatusUpdate() {
	team, leader := s.createTeam("Alpha", "TASK01")
	now := time.Now().UTC()

	for _, tc := range []struct {
		title string
		in    time.Duration
	}{{"later", 72 * time.Hour}, {"soon", time.Hour}, {"middle", 24 * time.Hour}} {
		s.Require().NoError(s.tasks.Create(s.ctx, &models.Task{
			TaskID:   uuid.NewString(),
			Title:    tc.title,
			OwnerID:  leader.MemberID,
			Deadline: now.Add(tc.in),
			Status:   models.TaskStatusNotStarted,
			TeamID:   team.TeamID,
		}))
	}

	tasks, err := s.tasks.ListByTeam(s.ctx, team.TeamID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 3)
	s.Equal([]string{"soon", "middle", "later"}, []string{tasks[0].Title, tasks[1].Title, tasks[2].Title})

	task := tasks[0]
	task.Status = models.TaskStatusCompleted
	s.Require().NoError(s.tasks.UpdateStatus(s.ctx, &task))

	reloaded, err := s.tasks.FindByTaskID(s.ctx, task.TaskID)
	s.Require().NoError(err)
	s.Equal(models.TaskStatusCompleted, reloaded.Status)
	s.Equal("soon", reloaded.Title)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))

	err := translate(gorm.ErrDuplicatedKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}
