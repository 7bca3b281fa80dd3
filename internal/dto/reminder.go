package dto

import (
	"time"

	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// CreateReminderRequest is the request body for POST /api/reminders.
// UserID targets another user's reminder list; omitted means the caller.
type CreateReminderRequest struct {
	Message  string    `json:"message" binding:"required"`
	RemindAt time.Time `json:"remind_at" binding:"required"`
	UserID   *uint64   `json:"user_id"`
}

// UpdateReminderRequest is the request body for PATCH /api/reminders/:id
type UpdateReminderRequest struct {
	Message     *string    `json:"message"`
	RemindAt    *time.Time `json:"remind_at"`
	IsSent      *bool      `json:"is_sent"`
	SentAt      *time.Time `json:"sent_at"`
	ClearSentAt bool       `json:"clear_sent_at"`
}

// ReminderListResponse is the response body for GET /api/reminders
type ReminderListResponse struct {
	Reminders  []models.Reminder        `json:"reminders"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// SweepResponse is the response body for POST /api/reminders/sweep
type SweepResponse struct {
	Sent  []models.Reminder `json:"sent"`
	Count int               `json:"count"`
}
