package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/who-owns-this/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateTeam is returned when inserting the team fails inside the create transaction.
	ErrCreateTeam = errors.New("team repository: create team failed")
	// ErrCreateLeader is returned when inserting the leader fails inside the create transaction.
	ErrCreateLeader = errors.New("team repository: create leader failed")
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithLeader creates a team and its leader atomically.
func (r *GormTeamRepository) CreateWithLeader(ctx context.Context, team *models.Team, leader *models.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateTeam, translate(err))
		}

		leader.TeamID = team.TeamID
		if err := tx.Create(leader).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateLeader, translate(err))
		}

		return nil
	})
}

// FindByTeamID finds a team by its opaque identifier
func (r *GormTeamRepository) FindByTeamID(ctx context.Context, teamID string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("team_id = ?", teamID).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByCode finds a team by join code
func (r *GormTeamRepository) FindByCode(ctx context.Context, code string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("team_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// CodeExists reports whether a team already uses code
func (r *GormTeamRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Team{}).Where("team_code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
