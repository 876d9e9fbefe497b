package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/yukikurage/who-owns-this/internal/errors"
	"github.com/yukikurage/who-owns-this/internal/models"
	"github.com/yukikurage/who-owns-this/internal/repository"
	"github.com/yukikurage/who-owns-this/internal/testutils"
	"gorm.io/gorm"
)

// TeamServiceTestSuite runs TeamService against an in-memory database
type TeamServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	ctx     context.Context
	service *TeamService
	members repository.MemberRepository
}

func (s *TeamServiceTestSuite) SetupTest() {
	s.db = testutils.NewSQLiteDB(s.T())
	s.ctx = context.Background()
	s.members = repository.NewMemberRepository(s.db)
	s.service = NewTeamService(repository.NewTeamRepository(s.db), s.members, NewValidator())
}

func (s *TeamServiceTestSuite) createTeam(teamName, leaderName string) (*models.Team, *models.Member) {
	team, leader, err := s.service.CreateTeam(s.ctx, CreateTeamInput{TeamName: teamName, LeaderName: leaderName})
	s.Require().NoError(err)
	return team, leader
}

func (s *TeamServiceTestSuite) TestCreateTeam_LinksLeaderAndTeam() {
	team, leader := s.createTeam("  Alpha Squad ", " Dana ")

	s.Equal("Alpha Squad", team.TeamName)
	s.Equal("Dana", leader.Name)
	s.Equal(leader.MemberID, team.LeaderID)
	s.Equal(team.TeamID, leader.TeamID)
	s.Len(team.TeamCode, 6)
	s.Equal(strings.ToUpper(team.TeamCode), team.TeamCode)

	members, err := s.service.ListMembers(s.ctx, team.TeamID)
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal(leader.MemberID, members[0].MemberID)
}

func (s *TeamServiceTestSuite) TestCreateTeam_CodesAreDistinct() {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		team, _ := s.createTeam(fmt.Sprintf("Team %d", i), "Leader")
		s.False(seen[team.TeamCode], "duplicate code %s", team.TeamCode)
		seen[team.TeamCode] = true
	}
}

func (s *TeamServiceTestSuite) TestCreateTeam_RetriesPastTakenCodes() {
	first, _ := s.createTeam("First", "Ann")

	codes := []string{first.TeamCode, first.TeamCode, "FRESH1"}
	calls := 0
	s.service.WithCodeGenerator(func() (string, error) {
		code := codes[calls]
		calls++
		return code, nil
	})

	team, _ := s.createTeam("Second", "Bob")
	s.Equal("FRESH1", team.TeamCode)
	s.Equal(3, calls)
}

func (s *TeamServiceTestSuite) TestCreateTeam_Validation() {
	tests := []struct {
		name    string
		input   CreateTeamInput
		message string
	}{
		{"missing team name", CreateTeamInput{TeamName: "   ", LeaderName: "Dana"}, "Team name is required"},
		{"missing leader name", CreateTeamInput{TeamName: "Alpha"}, "Leader name is required"},
		{"team name too long", CreateTeamInput{TeamName: strings.Repeat("a", 101), LeaderName: "Dana"}, "Team name must be 100 characters or less"},
		{"leader name too long", CreateTeamInput{TeamName: "Alpha", LeaderName: strings.Repeat("b", 51)}, "Leader name must be 50 characters or less"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, _, err := s.service.CreateTeam(s.ctx, tt.input)
			s.Require().Error(err)
			s.True(apierrors.IsValidation(err))
			s.Equal(tt.message, err.Error())
		})
	}
}

func (s *TeamServiceTestSuite) TestJoinTeam_IsIdempotent() {
	team, leader := s.createTeam("Alpha Squad", "Dana")

	first, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Sam", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.True(first.IsNewMember)
	s.Equal(team.TeamID, first.Member.TeamID)

	second, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Sam", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.False(second.IsNewMember)
	s.Equal(first.Member.MemberID, second.Member.MemberID)

	again, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Dana", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.False(again.IsNewMember)
	s.Equal(leader.MemberID, again.Member.MemberID)
}

func (s *TeamServiceTestSuite) TestJoinTeam_CaseInsensitive() {
	team, _ := s.createTeam("Alpha Squad", "Dana")

	joined, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Sam", TeamCode: team.TeamCode})
	s.Require().NoError(err)

	result, err := s.service.JoinTeam(s.ctx, JoinTeamInput{
		MemberName: "  sAM ",
		TeamCode:   " " + strings.ToLower(team.TeamCode) + " ",
	})
	s.Require().NoError(err)
	s.False(result.IsNewMember)
	s.Equal(joined.Member.MemberID, result.Member.MemberID)
	s.Equal("Sam", result.Member.Name)
}

func (s *TeamServiceTestSuite) TestJoinTeam_CaseInsensitiveNonASCII() {
	team, _ := s.createTeam("Équipe", "Zoë")

	first, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Émile", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.True(first.IsNewMember)

	second, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "émile", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.False(second.IsNewMember)
	s.Equal(first.Member.MemberID, second.Member.MemberID)

	leader, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "ZOË", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.False(leader.IsNewMember)
	s.Equal(team.LeaderID, leader.Member.MemberID)
}

// Members whose names differ only by case can coexist when inserted
// directly, and join then resolves to the earliest of them.
func (s *TeamServiceTestSuite) TestJoinTeam_CaseVariantsCreatedDirectly() {
	team, _ := s.createTeam("Alpha Squad", "Dana")

	upper := &models.Member{MemberID: uuid.NewString(), Name: "SAM", TeamID: team.TeamID}
	lower := &models.Member{MemberID: uuid.NewString(), Name: "sam", TeamID: team.TeamID}
	s.Require().NoError(s.members.Create(s.ctx, upper))
	s.Require().NoError(s.members.Create(s.ctx, lower))

	result, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Sam", TeamCode: team.TeamCode})
	s.Require().NoError(err)
	s.False(result.IsNewMember)
	s.Equal(upper.MemberID, result.Member.MemberID)

	members, err := s.service.ListMembers(s.ctx, team.TeamID)
	s.Require().NoError(err)
	s.Len(members, 3)
}

func (s *TeamServiceTestSuite) TestJoinTeam_UnknownCode() {
	_, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Sam", TeamCode: "NOPE00"})
	s.Require().Error(err)
	s.True(apierrors.IsNotFound(err))
	s.Equal("Team not found. Check your team code.", err.Error())
}

func (s *TeamServiceTestSuite) TestJoinTeam_Validation() {
	_, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: "Sam", TeamCode: "   "})
	s.Require().Error(err)
	s.Equal("Team code is required", err.Error())

	_, err = s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: strings.Repeat("x", 51), TeamCode: "ABC123"})
	s.Require().Error(err)
	s.Equal("Member name must be 50 characters or less", err.Error())
}

func (s *TeamServiceTestSuite) TestListMembers_UnknownTeam() {
	members, err := s.service.ListMembers(s.ctx, uuid.NewString())
	s.Nil(members)
	s.True(apierrors.IsNotFound(err))

	_, err = s.service.ListMembers(s.ctx, "")
	s.True(apierrors.IsNotFound(err))
}

func (s *TeamServiceTestSuite) TestListMembers_RegistrationOrder() {
	team, leader := s.createTeam("Alpha Squad", "Dana")
	for _, name := range []string{"Sam", "Kim", "Lee"} {
		_, err := s.service.JoinTeam(s.ctx, JoinTeamInput{MemberName: name, TeamCode: team.TeamCode})
		s.Require().NoError(err)
	}

	members, err := s.service.ListMembers(s.ctx, team.TeamID)
	s.Require().NoError(err)
	s.Require().Len(members, 4)
	s.Equal(leader.MemberID, members[0].MemberID)
	s.Equal([]string{"Dana", "Sam", "Kim", "Lee"}, []string{members[0].Name, members[1].Name, members[2].Name, members[3].Name})
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
