package dto

import (
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// AssignManagerRequest is the request body for PUT /api/admin/users/:id/manager.
// A null manager_id clears the assignment.
type AssignManagerRequest struct {
	ManagerID *uint64 `json:"manager_id"`
}

// DemoteManagerRequest is the request body for POST /api/admin/users/:id/demote
type DemoteManagerRequest struct {
	NextRole models.Role `json:"next_role" binding:"required"`
}

// DemoteManagerResponse reports what the demotion cascade touched.
type DemoteManagerResponse struct {
	DeletedCounts        map[string]int64 `json:"deleted_counts"`
	UnassignedUsersCount int64            `json:"unassigned_users_count"`
}

// AuditLogListResponse is the response body for GET /api/admin/audit-logs
type AuditLogListResponse struct {
	Entries    []models.AdminAuditLog   `json:"entries"`
	Pagination utils.PaginationResponse `json:"pagination"`
}
