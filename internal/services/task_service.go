package services

import (
	"errors"
	"time"

	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskService handles ownership-aware task operations.
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	ownership *OwnershipService
	logger    *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, ownership *OwnershipService, logger *zap.Logger) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		ownership: ownership,
		logger:    logger,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	CategoryID  *uint64
}

// UpdateTaskInput represents a partial task update. Pointer fields are only
// applied when set; the Clear flags express an explicit null.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	Status           *models.TaskStatus
	DueDate          *time.Time
	ClearDueDate     bool
	CompletedAt      *time.Time
	ClearCompletedAt bool
	CategoryID       *uint64
	ClearCategory    bool
}

// lockedFields returns the non-exempt fields this update touches.
func (in UpdateTaskInput) lockedFields() []string {
	var fields []string
	add := func(name string, set bool) {
		if set && !LockExemptField("task", name) {
			fields = append(fields, name)
		}
	}
	add("title", in.Title != nil)
	add("description", in.Description != nil)
	add("status", in.Status != nil)
	add("due_date", in.DueDate != nil || in.ClearDueDate)
	add("completed_at", in.CompletedAt != nil || in.ClearCompletedAt)
	add("category_id", in.CategoryID != nil || in.ClearCategory)
	return fields
}

// CreateTask creates a self-authored task for the actor.
func (s *TaskService) CreateTask(actor models.Actor, input CreateTaskInput) (*models.Task, error) {
	return s.createTask(actor, actor.ID, input)
}

// CreateManagerTask creates a task on behalf of a team member. The actor must
// be a manager and the target a current member of their team; a referenced
// category must belong to the target.
func (s *TaskService) CreateManagerTask(actor models.Actor, targetUserID uint64, input CreateTaskInput) (*models.Task, error) {
	if actor.Role != models.RoleManager || !actor.IsActive {
		return nil, apierrors.Forbidden("Only active managers can create tasks for team members")
	}

	ok, err := s.userRepo.IsTeamMember(actor.ID, targetUserID)
	if err != nil {
		s.logger.Error("team membership check failed", zap.Error(err))
		return nil, apierrors.Internal()
	}
	if !ok {
		return nil, apierrors.Forbidden("User is not a member of your team")
	}

	return s.createTask(actor, targetUserID, input)
}

func (s *TaskService) createTask(actor models.Actor, ownerUserID uint64, input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, apierrors.BadRequest("Title is required")
	}

	if input.CategoryID != nil {
		ok, err := s.taskRepo.CategoryBelongsTo(*input.CategoryID, ownerUserID)
		if err != nil {
			s.logger.Error("category lookup failed", zap.Error(err))
			return nil, apierrors.Internal()
		}
		if !ok {
			return nil, apierrors.BadRequestWithDetails("Category does not belong to the task owner", map[string]interface{}{
				"category_id": *input.CategoryID,
			})
		}
	}

	task := &models.Task{
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.TaskStatusTodo,
		DueDate:       input.DueDate,
		CategoryID:    input.CategoryID,
		OwnerUserID:   ownerUserID,
		CreatorUserID: actor.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		s.logger.Error("task create failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return task, nil
}

// GetTask returns a task the actor may see.
func (s *TaskService) GetTask(actor models.Actor, taskID uint64) (*models.Task, error) {
	task, err := s.findAccessibleTask(actor, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks lists the tasks of the resolved target user.
func (s *TaskService) ListTasks(actor models.Actor, requestedUserID *uint64, status *models.TaskStatus, params utils.PaginationParams) ([]models.Task, int64, error) {
	targetID, err := s.ownership.ResolveTargetUserID(actor, requestedUserID)
	if err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		OwnerUserID: targetID,
		Status:      status,
	}, params)
	if err != nil {
		s.logger.Error("task list failed", zap.Error(err))
		return nil, 0, apierrors.Internal()
	}

	return tasks, total, nil
}

// UpdateTask applies a partial update. When the task is locked against the
// actor (owner editing content someone else authored for them), only the
// status-progression allowlist may be touched.
func (s *TaskService) UpdateTask(actor models.Actor, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.findAccessibleTask(actor, taskID)
	if err != nil {
		return nil, err
	}

	if IsLockedForUser(actor, task.OwnerUserID, task.CreatorUserID) {
		if locked := input.lockedFields(); len(locked) > 0 {
			return nil, apierrors.ForbiddenWithDetails(
				"This item was created for you; only its status may be changed",
				map[string]interface{}{"locked_fields": locked},
			)
		}
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apierrors.BadRequest("Title cannot be empty")
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearCategory {
		task.CategoryID = nil
	} else if input.CategoryID != nil {
		ok, err := s.taskRepo.CategoryBelongsTo(*input.CategoryID, task.OwnerUserID)
		if err != nil {
			s.logger.Error("category lookup failed", zap.Error(err))
			return nil, apierrors.Internal()
		}
		if !ok {
			return nil, apierrors.BadRequestWithDetails("Category does not belong to the task owner", map[string]interface{}{
				"category_id": *input.CategoryID,
			})
		}
		task.CategoryID = input.CategoryID
	}
	if input.Status != nil {
		s.applyStatus(task, *input.Status, input.CompletedAt, input.ClearCompletedAt)
	} else if input.ClearCompletedAt {
		task.CompletedAt = nil
	} else if input.CompletedAt != nil {
		task.CompletedAt = input.CompletedAt
	}

	if err := s.taskRepo.Update(task); err != nil {
		s.logger.Error("task update failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return task, nil
}

// UpdateTaskStatus is the one mutation exempt from the creation lock: any
// actor who can act for the task's owner may progress its status.
func (s *TaskService) UpdateTaskStatus(actor models.Actor, taskID uint64, status models.TaskStatus, completedAt *time.Time, clearCompletedAt bool) (*models.Task, error) {
	if status != models.TaskStatusTodo && status != models.TaskStatusDone {
		return nil, apierrors.BadRequest("Invalid task status")
	}

	task, err := s.findAccessibleTask(actor, taskID)
	if err != nil {
		return nil, err
	}

	s.applyStatus(task, status, completedAt, clearCompletedAt)

	if err := s.taskRepo.Update(task); err != nil {
		s.logger.Error("task status update failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return task, nil
}

// applyStatus sets the status and keeps completed_at consistent with it:
// entering done stamps now unless the caller supplied an explicit value or an
// explicit clear; leaving done clears it unless a value was supplied.
func (s *TaskService) applyStatus(task *models.Task, status models.TaskStatus, completedAt *time.Time, clearCompletedAt bool) {
	task.Status = status

	switch {
	case clearCompletedAt:
		task.CompletedAt = nil
	case completedAt != nil:
		task.CompletedAt = completedAt
	case status == models.TaskStatusDone:
		now := time.Now()
		task.CompletedAt = &now
	default:
		task.CompletedAt = nil
	}
}

// DeleteTask removes a task. Admins may delete any task they can see and
// managers any task of a team member. An owning user may only delete tasks
// they authored themselves; delegated work items cannot be discarded by the
// assignee.
func (s *TaskService) DeleteTask(actor models.Actor, taskID uint64) error {
	task, err := s.findAccessibleTask(actor, taskID)
	if err != nil {
		return err
	}

	switch actor.Role {
	case models.RoleAdmin, models.RoleManager:
		// access already verified against the owner
	case models.RoleUser:
		if task.CreatorUserID != actor.ID {
			return apierrors.Forbidden("This item was created for you and can only be removed by its creator")
		}
	default:
		return apierrors.Forbidden("")
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		s.logger.Error("task delete failed", zap.Error(err))
		return apierrors.Internal()
	}

	return nil
}

// findAccessibleTask loads a task and verifies the actor can act for its owner.
func (s *TaskService) findAccessibleTask(actor models.Actor, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Task not found")
		}
		s.logger.Error("task lookup failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	ok, err := s.ownership.CanActorAccessUser(actor, task.OwnerUserID)
	if err != nil {
		s.logger.Error("access check failed", zap.Error(err))
		return nil, apierrors.Internal()
	}
	if !ok {
		return nil, apierrors.Forbidden("")
	}

	return task, nil
}
