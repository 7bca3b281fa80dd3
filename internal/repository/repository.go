package repository

import (
	"time"

	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByManagerID lists the users assigned to a manager
	ListByManagerID(managerID uint64) ([]models.User, error)

	// IsTeamMember reports whether userID is currently assigned to managerID
	IsTeamMember(managerID, userID uint64) (bool, error)
}

// SessionRepository defines the interface for login session data access
type SessionRepository interface {
	// Create creates a new session
	Create(session *models.Session) error

	// FindByToken finds a non-expired session by token
	FindByToken(token string) (*models.Session, error)

	// DeleteByToken deletes a session by token
	DeleteByToken(token string) error

	// DeleteByUserID deletes every session belonging to a user
	DeleteByUserID(userID uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerUserID uint64
	Status      *models.TaskStatus
	DueBefore   *time.Time
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves an owner's tasks with pagination
	List(filter TaskFilter, params utils.PaginationParams) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// CategoryBelongsTo reports whether a category exists and belongs to ownerID
	CategoryBelongsTo(categoryID, ownerID uint64) (bool, error)
}

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	// Create creates a new reminder
	Create(reminder *models.Reminder) error

	// FindByID finds a reminder by ID
	FindByID(id uint64) (*models.Reminder, error)

	// ListByOwner lists an owner's reminders
	ListByOwner(ownerID uint64, params utils.PaginationParams) ([]models.Reminder, int64, error)

	// Update updates a reminder
	Update(reminder *models.Reminder) error

	// SweepDue atomically marks every due unsent reminder of an owner as sent
	// with one shared timestamp and returns exactly the set it flipped.
	SweepDue(ownerID uint64, now time.Time) ([]models.Reminder, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// ListByOwner lists an owner's categories
	ListByOwner(ownerID uint64) ([]models.Category, error)

	// Delete deletes a category, nulling the category reference on any task or
	// note that points at it, in one transaction.
	Delete(id uint64) error
}

// AuditLogRepository defines the interface for the append-only audit log
type AuditLogRepository interface {
	// Append appends one audit entry
	Append(entry *models.AdminAuditLog) error

	// List returns audit entries, newest first
	List(params utils.PaginationParams) ([]models.AdminAuditLog, int64, error)
}

// DemotionResult reports what a manager demotion cascade touched.
type DemotionResult struct {
	DeletedReminders  int64
	DeletedEvents     int64
	DeletedTasks      int64
	DeletedNotes      int64
	DeletedCategories int64
	UnassignedUsers   int64
}

// DelegationRepository runs the atomic role and team-assignment transitions.
// Every precondition is re-checked inside the transaction that applies the
// write, so a row changing between check and commit fails the whole operation.
type DelegationRepository interface {
	// AssignManager sets or clears a user's manager and appends one audit entry.
	AssignManager(adminID, userID uint64, managerID *uint64) error

	// DemoteManager runs the six-step demotion cascade and appends one audit
	// entry carrying the per-table deletion counts.
	DemoteManager(adminID, managerUserID uint64, nextRole models.Role) (*DemotionResult, error)
}
