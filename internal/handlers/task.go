package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/dto"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/middleware"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// requireActor pulls the resolved Actor or responds 401.
func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Respond(c, apierrors.Unauthorized(""))
		return models.Actor{}, false
	}
	return actor, true
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid id"))
		return 0, false
	}
	return id, true
}

// parseUserIDQuery parses the optional ?user_id= query parameter.
func parseUserIDQuery(c *gin.Context) (*uint64, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid user_id"))
		return nil, false
	}
	return &id, true
}

// ListTasks returns the tasks of the requested user (self by default).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	requestedUserID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		if s != models.TaskStatusTodo && s != models.TaskStatusDone {
			apierrors.Respond(c, apierrors.BadRequest("Invalid status"))
			return
		}
		status = &s
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(actor, requestedUserID, status, params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: tasks,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a specific task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(actor, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a self-authored task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// CreateTeamTask creates a task on behalf of a team member.
func (h *TaskHandler) CreateTeamTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTeamTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	task, err := h.taskService.CreateManagerTask(actor, req.UserID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	task, err := h.taskService.UpdateTask(actor, taskID, services.UpdateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		Status:           req.Status,
		DueDate:          req.DueDate,
		ClearDueDate:     req.ClearDueDate,
		CompletedAt:      req.CompletedAt,
		ClearCompletedAt: req.ClearCompletedAt,
		CategoryID:       req.CategoryID,
		ClearCategory:    req.ClearCategory,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus progresses a task's status.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	task, err := h.taskService.UpdateTaskStatus(actor, taskID, req.Status, req.CompletedAt, req.ClearCompletedAt)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}
