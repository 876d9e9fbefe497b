package dto

import (
	"time"

	"github.com/yukikurage/who-owns-this/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID       uint64            `json:"_id"`
	TaskID   string            `json:"taskId"`
	Title    string            `json:"title"`
	OwnerID  string            `json:"ownerId"`
	Deadline time.Time         `json:"deadline"`
	Status   models.TaskStatus `json:"status"`
	TeamID   string            `json:"teamId"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:       task.ID,
		TaskID:   task.TaskID,
		Title:    task.Title,
		OwnerID:  task.OwnerID,
		Deadline: task.Deadline.UTC(),
		Status:   task.Status,
		TeamID:   task.TeamID,
	}
}

// ToTaskDTOs converts tasks, returning an empty (non-nil) slice for none
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
