package repository

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mocks.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/who-owns-this/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when an insert violates a unique index.
// Lookups return gorm.ErrRecordNotFound when nothing matches.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithLeader inserts the team and its leader in one transaction.
	CreateWithLeader(ctx context.Context, team *models.Team, leader *models.Member) error

	// FindByTeamID finds a team by its opaque identifier
	FindByTeamID(ctx context.Context, teamID string) (*models.Team, error)

	// FindByCode finds a team by its (uppercase) join code
	FindByCode(ctx context.Context, code string) (*models.Team, error)

	// CodeExists reports whether any team already uses code
	CodeExists(ctx context.Context, code string) (bool, error)
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create inserts a member. The (name, team) pair must be unique.
	Create(ctx context.Context, member *models.Member) error

	// FindByMemberID finds a member of the given team
	FindByMemberID(ctx context.Context, teamID, memberID string) (*models.Member, error)

	// FindByNameFold finds a member of the team whose name matches
	// case-insensitively
	FindByNameFold(ctx context.Context, teamID, name string) (*models.Member, error)

	// ListByTeam lists members in registration order
	ListByTeam(ctx context.Context, teamID string) ([]models.Member, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a task
	Create(ctx context.Context, task *models.Task) error

	// FindByTaskID finds a task by its opaque identifier
	FindByTaskID(ctx context.Context, taskID string) (*models.Task, error)

	// ListByTeam lists a team's tasks by ascending deadline
	ListByTeam(ctx context.Context, teamID string) ([]models.Task, error)

	// UpdateStatus persists task.Status
	UpdateStatus(ctx context.Context, task *models.Task) error
}

// translate maps driver errors that callers need to tell apart.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}
