package repository

import (
	"context"

	"github.com/yukikurage/who-owns-this/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(ctx context.Context, member *models.Member) error {
	return translate(r.db.WithContext(ctx).Create(member).Error)
}

// FindByMemberID finds a member by identifier within a team
func (r *GormMemberRepository) FindByMemberID(ctx context.Context, teamID, memberID string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND member_id = ?", teamID, memberID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByNameFold finds the earliest registered member whose name equals
// name under Unicode case folding. The comparison is exact otherwise, so
// names are never treated as patterns.
func (r *GormMemberRepository) FindByNameFold(ctx context.Context, teamID, name string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).
		Where("team_id = ? AND name_key = ?", teamID, models.FoldName(name)).
		Order("id ASC").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByTeam lists members by ascending creation time
func (r *GormMemberRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Member, error) {
	members := []models.Member{}
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC, id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
