package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrAdminInvalid is returned when the acting admin is missing, not an admin, or inactive.
	ErrAdminInvalid = errors.New("delegation repository: acting admin is not a valid active admin")
	// ErrTargetNotFound is returned when the target user does not exist.
	ErrTargetNotFound = errors.New("delegation repository: target user not found")
	// ErrTargetNotUser is returned when a manager assignment targets a non-user role.
	ErrTargetNotUser = errors.New("delegation repository: target role must be user")
	// ErrTargetNotManager is returned when a demotion targets a non-manager role.
	ErrTargetNotManager = errors.New("delegation repository: target role must be manager")
	// ErrSelfManager is returned when a user would be assigned as their own manager.
	ErrSelfManager = errors.New("delegation repository: a user cannot be their own manager")
	// ErrManagerNotFound is returned when the referenced manager does not exist.
	ErrManagerNotFound = errors.New("delegation repository: referenced manager not found")
	// ErrManagerInvalid is returned when the referenced manager is not a manager or inactive.
	ErrManagerInvalid = errors.New("delegation repository: referenced manager is not a valid active manager")
	// ErrInvalidNextRole is returned when a demotion names an unknown next role or manager itself.
	ErrInvalidNextRole = errors.New("delegation repository: invalid next role")
)

// GormDelegationRepository is a GORM implementation of DelegationRepository
type GormDelegationRepository struct {
	db *gorm.DB
}

// NewDelegationRepository creates a new DelegationRepository
func NewDelegationRepository(db *gorm.DB) DelegationRepository {
	return &GormDelegationRepository{db: db}
}

// requireActiveAdmin reloads the acting admin inside the transaction.
func requireActiveAdmin(tx *gorm.DB, adminID uint64) error {
	var admin models.User
	if err := tx.First(&admin, adminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminInvalid
		}
		return err
	}
	if admin.Role != models.RoleAdmin || !admin.IsActive {
		return ErrAdminInvalid
	}
	return nil
}

type assignManagerDetails struct {
	PreviousManagerID *uint64 `json:"previous_manager_id"`
	NextManagerID     *uint64 `json:"next_manager_id"`
}

// AssignManager sets or clears a user's manager. All preconditions are checked
// against rows read inside the same transaction that applies the write, so a
// manager deactivated after the request was made cannot be assigned.
func (r *GormDelegationRepository) AssignManager(adminID, userID uint64, managerID *uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAdmin(tx, adminID); err != nil {
			return err
		}

		var target models.User
		if err := tx.First(&target, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
		if target.Role != models.RoleUser {
			return ErrTargetNotUser
		}

		if managerID != nil {
			if *managerID == userID {
				return ErrSelfManager
			}
			var manager models.User
			if err := tx.First(&manager, *managerID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrManagerNotFound
				}
				return err
			}
			if manager.Role != models.RoleManager || !manager.IsActive {
				return ErrManagerInvalid
			}
		}

		previous := target.ManagerID
		err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("manager_id", managerID).Error
		if err != nil {
			return err
		}

		details, err := json.Marshal(assignManagerDetails{
			PreviousManagerID: previous,
			NextManagerID:     managerID,
		})
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}

		return tx.Create(&models.AdminAuditLog{
			AdminID:      adminID,
			TargetUserID: userID,
			Action:       models.AuditActionAssignManager,
			Details:      details,
		}).Error
	})
}

type demoteManagerDetails struct {
	NextRole             models.Role      `json:"next_role"`
	DeletedCounts        map[string]int64 `json:"deleted_counts"`
	UnassignedUsersCount int64            `json:"unassigned_users_count"`
}

// DemoteManager strips the manager role from a user and unwinds everything
// their authorship left behind: delegated resources are deleted, the team is
// disbanded, sessions are revoked, and one audit entry records the counts.
// The six steps commit together or not at all.
func (r *GormDelegationRepository) DemoteManager(adminID, managerUserID uint64, nextRole models.Role) (*DemotionResult, error) {
	if !models.ValidRole(nextRole) || nextRole == models.RoleManager {
		return nil, ErrInvalidNextRole
	}

	result := &DemotionResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAdmin(tx, adminID); err != nil {
			return err
		}

		var target models.User
		if err := tx.First(&target, managerUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTargetNotFound
			}
			return err
		}
		if target.Role != models.RoleManager {
			return ErrTargetNotManager
		}

		// Delegated authorship has no owner once its author is demoted, so
		// everything the manager created is deleted rather than re-attributed.
		// Ordered steps, each feeding its count into the audit payload.
		deleteSteps := []struct {
			name  string
			model interface{}
			count *int64
		}{
			{"reminders", &models.Reminder{}, &result.DeletedReminders},
			{"events", &models.Event{}, &result.DeletedEvents},
			{"tasks", &models.Task{}, &result.DeletedTasks},
			{"notes", &models.Note{}, &result.DeletedNotes},
		}
		for _, step := range deleteSteps {
			res := tx.Where("creator_user_id = ?", managerUserID).Delete(step.model)
			if res.Error != nil {
				return fmt.Errorf("failed to delete %s: %w", step.name, res.Error)
			}
			*step.count = res.RowsAffected
		}

		// Surviving tasks and notes referencing a manager-authored category
		// lose the reference before the category goes away.
		var categoryIDs []uint64
		err := tx.Model(&models.Category{}).
			Where("creator_user_id = ?", managerUserID).
			Pluck("id", &categoryIDs).Error
		if err != nil {
			return err
		}
		if len(categoryIDs) > 0 {
			err = tx.Model(&models.Task{}).
				Where("category_id IN ?", categoryIDs).
				Update("category_id", nil).Error
			if err != nil {
				return err
			}
			err = tx.Model(&models.Note{}).
				Where("category_id IN ?", categoryIDs).
				Update("category_id", nil).Error
			if err != nil {
				return err
			}
		}
		res := tx.Where("creator_user_id = ?", managerUserID).Delete(&models.Category{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete categories: %w", res.Error)
		}
		result.DeletedCategories = res.RowsAffected

		// Team disbanded.
		res = tx.Model(&models.User{}).
			Where("manager_id = ?", managerUserID).
			Update("manager_id", nil)
		if res.Error != nil {
			return res.Error
		}
		result.UnassignedUsers = res.RowsAffected

		err = tx.Model(&models.User{}).
			Where("id = ?", managerUserID).
			Updates(map[string]interface{}{"role": nextRole, "manager_id": nil}).Error
		if err != nil {
			return err
		}

		// Force re-authentication under the new role.
		if err := tx.Where("user_id = ?", managerUserID).Delete(&models.Session{}).Error; err != nil {
			return err
		}

		details, err := json.Marshal(demoteManagerDetails{
			NextRole: nextRole,
			DeletedCounts: map[string]int64{
				"reminders":  result.DeletedReminders,
				"events":     result.DeletedEvents,
				"tasks":      result.DeletedTasks,
				"notes":      result.DeletedNotes,
				"categories": result.DeletedCategories,
			},
			UnassignedUsersCount: result.UnassignedUsers,
		})
		if err != nil {
			return fmt.Errorf("failed to encode audit details: %w", err)
		}

		return tx.Create(&models.AdminAuditLog{
			AdminID:      adminID,
			TargetUserID: managerUserID,
			Action:       models.AuditActionRemoveManager,
			Details:      details,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
