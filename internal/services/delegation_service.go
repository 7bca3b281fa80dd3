package services

import (
	"errors"

	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
	"go.uber.org/zap"
)

// DelegationService runs the admin role and team-assignment transitions.
// The atomicity lives in the repository; this layer translates its sentinel
// errors into the API error taxonomy and logs the privileged mutation.
type DelegationService struct {
	delegationRepo repository.DelegationRepository
	auditRepo      repository.AuditLogRepository
	logger         *zap.Logger
}

// NewDelegationService creates a new DelegationService
func NewDelegationService(delegationRepo repository.DelegationRepository, auditRepo repository.AuditLogRepository, logger *zap.Logger) *DelegationService {
	return &DelegationService{
		delegationRepo: delegationRepo,
		auditRepo:      auditRepo,
		logger:         logger,
	}
}

// AssignUserToManager sets or clears a user's manager assignment.
func (s *DelegationService) AssignUserToManager(adminID, userID uint64, managerID *uint64) error {
	err := s.delegationRepo.AssignManager(adminID, userID, managerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAdminInvalid):
			return apierrors.Forbidden("Admin privileges required")
		case errors.Is(err, repository.ErrTargetNotFound):
			return apierrors.NotFound("User not found")
		case errors.Is(err, repository.ErrTargetNotUser):
			return apierrors.BadRequest("Only users with the user role can be assigned to a manager")
		case errors.Is(err, repository.ErrSelfManager):
			return apierrors.BadRequest("A user cannot be their own manager")
		case errors.Is(err, repository.ErrManagerNotFound):
			return apierrors.NotFound("Manager not found")
		case errors.Is(err, repository.ErrManagerInvalid):
			return apierrors.BadRequest("Referenced user is not an active manager")
		}
		s.logger.Error("manager assignment failed",
			zap.Uint64("admin_id", adminID),
			zap.Uint64("user_id", userID),
			zap.Error(err))
		return apierrors.Internal()
	}

	s.logger.Info("manager assignment changed",
		zap.Uint64("admin_id", adminID),
		zap.Uint64("user_id", userID),
		zap.Uint64p("manager_id", managerID))
	return nil
}

// RemoveManagerRole demotes a manager to nextRole, deleting everything they
// authored for others, disbanding their team, and revoking their sessions.
func (s *DelegationService) RemoveManagerRole(adminID, managerUserID uint64, nextRole models.Role) (*repository.DemotionResult, error) {
	result, err := s.delegationRepo.DemoteManager(adminID, managerUserID, nextRole)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAdminInvalid):
			return nil, apierrors.Forbidden("Admin privileges required")
		case errors.Is(err, repository.ErrTargetNotFound):
			return nil, apierrors.NotFound("User not found")
		case errors.Is(err, repository.ErrTargetNotManager):
			return nil, apierrors.BadRequest("Target user is not a manager")
		case errors.Is(err, repository.ErrInvalidNextRole):
			return nil, apierrors.BadRequest("Invalid next role")
		}
		s.logger.Error("manager demotion failed",
			zap.Uint64("admin_id", adminID),
			zap.Uint64("manager_id", managerUserID),
			zap.Error(err))
		return nil, apierrors.Internal()
	}

	s.logger.Info("manager demoted",
		zap.Uint64("admin_id", adminID),
		zap.Uint64("manager_id", managerUserID),
		zap.String("next_role", string(nextRole)),
		zap.Int64("deleted_tasks", result.DeletedTasks),
		zap.Int64("unassigned_users", result.UnassignedUsers))
	return result, nil
}

// ListAuditLogs returns audit entries for display, newest first.
func (s *DelegationService) ListAuditLogs(params utils.PaginationParams) ([]models.AdminAuditLog, int64, error) {
	entries, total, err := s.auditRepo.List(params)
	if err != nil {
		s.logger.Error("audit log list failed", zap.Error(err))
		return nil, 0, apierrors.Internal()
	}
	return entries, total, nil
}
