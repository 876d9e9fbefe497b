package repository

import (
	"context"

	"github.com/yukikurage/who-owns-this/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return translate(r.db.WithContext(ctx).Create(task).Error)
}

// FindByTaskID finds a task by its opaque identifier
func (r *GormTaskRepository) FindByTaskID(ctx context.Context, taskID string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByTeam lists tasks by ascending deadline
func (r *GormTaskRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("deadline ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus writes only the status column of the task
func (r *GormTaskRepository) UpdateStatus(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Model(task).Update("status", task.Status).Error
}
