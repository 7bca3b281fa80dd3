package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/dto"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// ReminderHandler coordinates reminder-related HTTP handlers.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// ListReminders returns the reminders of the requested user (self by default).
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	requestedUserID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	reminders, total, err := h.reminderService.ListReminders(actor, requestedUserID, params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReminderListResponse{
		Reminders: reminders,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateReminder creates a reminder for the resolved target user.
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	reminder, err := h.reminderService.CreateReminder(actor, services.CreateReminderInput{
		Message:  req.Message,
		RemindAt: req.RemindAt,
		UserID:   req.UserID,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder applies a partial update to a reminder.
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reminderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	reminder, err := h.reminderService.UpdateReminder(actor, reminderID, services.UpdateReminderInput{
		Message:     req.Message,
		RemindAt:    req.RemindAt,
		IsSent:      req.IsSent,
		SentAt:      req.SentAt,
		ClearSentAt: req.ClearSentAt,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// SweepReminders marks every currently-due reminder of the resolved target as
// sent and returns exactly the set that fired.
func (h *ReminderHandler) SweepReminders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	requestedUserID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	swept, err := h.reminderService.SweepDueReminders(actor, requestedUserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SweepResponse{
		Sent:  swept,
		Count: len(swept),
	})
}
