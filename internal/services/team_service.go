package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/who-owns-this/internal/constants"
	"github.com/yukikurage/who-owns-this/internal/models"
	"github.com/yukikurage/who-owns-this/internal/repository"
	"github.com/yukikurage/who-owns-this/internal/utils"
	"gorm.io/gorm"
)

// TeamService provides team creation, join-as-login and roster listing.
type TeamService struct {
	teamRepo     repository.TeamRepository
	memberRepo   repository.MemberRepository
	validator    *validator.Validate
	generateCode func() (string, error)
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, memberRepo repository.MemberRepository, validator *validator.Validate) *TeamService {
	return &TeamService{
		teamRepo:     teamRepo,
		memberRepo:   memberRepo,
		validator:    validator,
		generateCode: utils.GenerateTeamCode,
	}
}

// WithCodeGenerator replaces the team code source. Used by tests to force
// collisions.
func (s *TeamService) WithCodeGenerator(generate func() (string, error)) *TeamService {
	s.generateCode = generate
	return s
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	TeamName   string `label:"Team name" validate:"required,max=100"`
	LeaderName string `label:"Leader name" validate:"required,max=50"`
}

// JoinTeamInput represents parameters to join (or sign in to) a team.
type JoinTeamInput struct {
	MemberName string `label:"Member name" validate:"required,max=50"`
	TeamCode   string `label:"Team code" validate:"required"`
}

// JoinTeamResult is the resolved identity of a join request.
type JoinTeamResult struct {
	Team        *models.Team
	Member      *models.Member
	IsNewMember bool
}

// CreateTeam creates a team and its leader. The team code comes from a
// bounded lookup; the unique index on team_code has the final say, so a
// rejected insert is retried with a fresh code.
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, *models.Member, error) {
	trim(&input.TeamName, &input.LeaderName)
	if err := s.validator.Struct(input); err != nil {
		return nil, nil, validationError(err)
	}

	for attempt := 1; attempt <= constants.MaxTeamCreateAttempts; attempt++ {
		code, unique, err := utils.PickTeamCode(ctx, s.generateCode, s.teamRepo.CodeExists, constants.MaxTeamCodeRetries)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate team code: %w", err)
		}
		if !unique {
			logrus.WithField("team_code", code).Warn("team code still taken after retries, relying on unique index")
		}

		leaderID := uuid.NewString()
		team := &models.Team{
			TeamID:   uuid.NewString(),
			TeamName: input.TeamName,
			TeamCode: code,
			LeaderID: leaderID,
		}
		leader := &models.Member{
			MemberID: leaderID,
			Name:     input.LeaderName,
		}

		err = s.teamRepo.CreateWithLeader(ctx, team, leader)
		if err == nil {
			logrus.WithFields(logrus.Fields{
				"team_id":   team.TeamID,
				"team_code": team.TeamCode,
				"leader_id": leader.MemberID,
			}).Info("team created")
			return team, leader, nil
		}

		if !errors.Is(err, repository.ErrCreateTeam) || !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, nil, fmt.Errorf("failed to create team: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"team_code": code,
			"attempt":   attempt,
		}).Warn("team code claimed concurrently, retrying")
	}

	return nil, nil, ErrTeamCodeConflict
}

// JoinTeam resolves a name within a team to a member, creating the member
// on first use. Names match case-insensitively.
func (s *TeamService) JoinTeam(ctx context.Context, input JoinTeamInput) (*JoinTeamResult, error) {
	trim(&input.MemberName)
	input.TeamCode = utils.NormalizeTeamCode(input.TeamCode)
	if err := s.validator.Struct(input); err != nil {
		return nil, validationError(err)
	}

	team, err := s.teamRepo.FindByCode(ctx, input.TeamCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamCodeNotFound
		}
		return nil, fmt.Errorf("failed to find team by code: %w", err)
	}

	member, err := s.memberRepo.FindByNameFold(ctx, team.TeamID, input.MemberName)
	if err == nil {
		logrus.WithFields(logrus.Fields{
			"team_id":   team.TeamID,
			"member_id": member.MemberID,
		}).Infof("Existing member logged in: %s", member.Name)
		return &JoinTeamResult{Team: team, Member: member, IsNewMember: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	member = &models.Member{
		MemberID: uuid.NewString(),
		Name:     input.MemberName,
		TeamID:   team.TeamID,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			logrus.WithField("team_id", team.TeamID).WithError(err).Warn("concurrent join with the same name")
			return nil, ErrMemberNameConflict
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"team_id":   team.TeamID,
		"member_id": member.MemberID,
	}).Infof("New member joined: %s", member.Name)
	return &JoinTeamResult{Team: team, Member: member, IsNewMember: true}, nil
}

// ListMembers returns the members of a team in registration order, leader first.
func (s *TeamService) ListMembers(ctx context.Context, teamID string) ([]models.Member, error) {
	if _, err := findTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func findTeam(ctx context.Context, teamRepo repository.TeamRepository, teamID string) (*models.Team, error) {
	if teamID == "" {
		return nil, ErrTeamNotFound
	}

	team, err := teamRepo.FindByTeamID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}
