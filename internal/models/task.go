package models

import "time"

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "Not Started"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID        uint64     `gorm:"primarykey" json:"_id"`
	TaskID    string     `gorm:"type:varchar(36);uniqueIndex;not null" json:"taskId"`
	Title     string     `gorm:"type:varchar(200);not null" json:"title"`
	OwnerID   string     `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	Deadline  time.Time  `gorm:"not null;index" json:"deadline"`
	Status    TaskStatus `gorm:"type:varchar(20);not null;default:'Not Started'" json:"status"`
	TeamID    string     `gorm:"type:varchar(36);not null;index" json:"teamId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
