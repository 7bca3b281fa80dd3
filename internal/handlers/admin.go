package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/dto"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// AdminHandler coordinates admin-only HTTP handlers.
type AdminHandler struct {
	delegationService *services.DelegationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(delegationService *services.DelegationService) *AdminHandler {
	return &AdminHandler{
		delegationService: delegationService,
	}
}

// AssignManager sets or clears a user's manager assignment.
func (h *AdminHandler) AssignManager(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	if err := h.delegationService.AssignUserToManager(actor.ID, userID, req.ManagerID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Manager assignment updated",
	})
}

// DemoteManager removes the manager role from a user, cascading over
// everything their delegated authorship created.
func (h *AdminHandler) DemoteManager(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	managerUserID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.DemoteManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	result, err := h.delegationService.RemoveManagerRole(actor.ID, managerUserID, req.NextRole)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DemoteManagerResponse{
		DeletedCounts: map[string]int64{
			"reminders":  result.DeletedReminders,
			"events":     result.DeletedEvents,
			"tasks":      result.DeletedTasks,
			"notes":      result.DeletedNotes,
			"categories": result.DeletedCategories,
		},
		UnassignedUsersCount: result.UnassignedUsers,
	})
}

// ListAuditLogs returns the audit trail, newest first.
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	entries, total, err := h.delegationService.ListAuditLogs(params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuditLogListResponse{
		Entries: entries,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
