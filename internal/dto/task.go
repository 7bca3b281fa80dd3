package dto

import (
	"time"

	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// CreateTaskRequest is the request body for POST /api/tasks
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *uint64    `json:"category_id"`
}

// CreateTeamTaskRequest is the request body for POST /api/team/tasks.
// UserID is the team member the task is created for.
type CreateTeamTaskRequest struct {
	UserID      uint64     `json:"user_id" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	CategoryID  *uint64    `json:"category_id"`
}

// UpdateTaskRequest is the request body for PATCH /api/tasks/:id.
// Pointer fields are applied only when present; the clear flags express an
// explicit null.
type UpdateTaskRequest struct {
	Title            *string            `json:"title"`
	Description      *string            `json:"description"`
	Status           *models.TaskStatus `json:"status"`
	DueDate          *time.Time         `json:"due_date"`
	ClearDueDate     bool               `json:"clear_due_date"`
	CompletedAt      *time.Time         `json:"completed_at"`
	ClearCompletedAt bool               `json:"clear_completed_at"`
	CategoryID       *uint64            `json:"category_id"`
	ClearCategory    bool               `json:"clear_category"`
}

// UpdateTaskStatusRequest is the request body for PATCH /api/tasks/:id/status
type UpdateTaskStatusRequest struct {
	Status           models.TaskStatus `json:"status" binding:"required"`
	CompletedAt      *time.Time        `json:"completed_at"`
	ClearCompletedAt bool              `json:"clear_completed_at"`
}

// TaskListResponse is the response body for GET /api/tasks
type TaskListResponse struct {
	Tasks      []models.Task            `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
