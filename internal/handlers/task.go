package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/who-owns-this/internal/dto"
	apierrors "github.com/yukikurage/who-owns-this/internal/errors"
	"github.com/yukikurage/who-owns-this/internal/models"
	"github.com/yukikurage/who-owns-this/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns a team's tasks ordered by deadline
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		apierrors.Respond(c, err, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task. Only the team leader may call it.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title    string `json:"title"`
		OwnerID  string `json:"ownerId"`
		Deadline string `json:"deadline"`
		TeamID   string `json:"teamId"`
		LeaderID string `json:"leaderId"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:    req.Title,
		OwnerID:  req.OwnerID,
		Deadline: req.Deadline,
		TeamID:   req.TeamID,
		LeaderID: req.LeaderID,
	})
	if err != nil {
		apierrors.Respond(c, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus changes a task's status. Only the task owner may call it.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateTaskStatusRequest struct {
		Status   models.TaskStatus `json:"status"`
		MemberID string            `json:"memberId"`
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), services.UpdateTaskStatusInput{
		TaskID:   c.Param("id"),
		Status:   req.Status,
		MemberID: req.MemberID,
	})
	if err != nil {
		apierrors.Respond(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}
