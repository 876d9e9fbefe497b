package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/who-owns-this/internal/models"
	"github.com/yukikurage/who-owns-this/internal/repository"
	"gorm.io/gorm"
)

// deadlineLayouts are accepted for CreateTaskInput.Deadline, most specific first.
var deadlineLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// TaskService handles task business logic
type TaskService struct {
	taskRepo   repository.TaskRepository
	teamRepo   repository.TeamRepository
	memberRepo repository.MemberRepository
	validator  *validator.Validate
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, teamRepo repository.TeamRepository, memberRepo repository.MemberRepository, validator *validator.Validate) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		validator:  validator,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title    string `label:"Title" validate:"required,max=200"`
	OwnerID  string `label:"Owner" validate:"required"`
	Deadline string `label:"Deadline" validate:"required"`
	TeamID   string `label:"Team" validate:"required"`
	LeaderID string `label:"Leader" validate:"required"`
}

// UpdateTaskStatusInput represents input for changing a task's status
type UpdateTaskStatusInput struct {
	TaskID   string            `label:"Task" validate:"required"`
	Status   models.TaskStatus `label:"Status" validate:"required"`
	MemberID string            `label:"Member" validate:"required"`
}

// ListTasks returns a team's tasks ordered by ascending deadline
func (s *TaskService) ListTasks(ctx context.Context, teamID string) ([]models.Task, error) {
	if _, err := findTeam(ctx, s.teamRepo, teamID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a task on behalf of the team leader. The owner must
// belong to the team at creation time.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	trim(&input.Title, &input.OwnerID, &input.Deadline, &input.TeamID, &input.LeaderID)
	if err := s.validator.Struct(input); err != nil {
		return nil, validationError(err)
	}

	deadline, err := parseDeadline(input.Deadline)
	if err != nil {
		return nil, ErrInvalidDeadline
	}

	team, err := findTeam(ctx, s.teamRepo, input.TeamID)
	if err != nil {
		return nil, err
	}

	if team.LeaderID != input.LeaderID {
		return nil, ErrNotTeamLeader
	}

	if _, err := s.memberRepo.FindByMemberID(ctx, team.TeamID, input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotMember
		}
		return nil, fmt.Errorf("failed to verify task owner: %w", err)
	}

	task := &models.Task{
		TaskID:   uuid.NewString(),
		Title:    input.Title,
		OwnerID:  input.OwnerID,
		Deadline: deadline,
		Status:   models.TaskStatusNotStarted,
		TeamID:   team.TeamID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"team_id":  task.TeamID,
		"task_id":  task.TaskID,
		"owner_id": task.OwnerID,
	}).Info("task created")
	return task, nil
}

// UpdateTaskStatus sets a task's status on behalf of its owner. Any
// status may follow any other.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, input UpdateTaskStatusInput) (*models.Task, error) {
	trim(&input.TaskID, &input.MemberID)
	if err := s.validator.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindByTaskID(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != input.MemberID {
		return nil, ErrNotTaskOwner
	}

	previous := task.Status
	task.Status = input.Status
	if err := s.taskRepo.UpdateStatus(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"task_id": task.TaskID,
		"from":    previous,
		"to":      task.Status,
	}).Info("task status updated")
	return task, nil
}

func parseDeadline(value string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized deadline %q", value)
}
