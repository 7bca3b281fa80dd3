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

// ReminderService handles reminder operations and the due-reminder sweep.
type ReminderService struct {
	reminderRepo repository.ReminderRepository
	ownership    *OwnershipService
	logger       *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(reminderRepo repository.ReminderRepository, ownership *OwnershipService, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		ownership:    ownership,
		logger:       logger,
	}
}

// CreateReminderInput represents input for creating a reminder
type CreateReminderInput struct {
	Message  string
	RemindAt time.Time
	// UserID targets another user's reminder list; nil means the actor.
	UserID *uint64
}

// CreateReminder creates a reminder for the resolved target user. When a
// manager or admin targets someone else the reminder is delegated: owner and
// creator differ and the creation lock applies to the owner.
func (s *ReminderService) CreateReminder(actor models.Actor, input CreateReminderInput) (*models.Reminder, error) {
	if input.Message == "" {
		return nil, apierrors.BadRequest("Message is required")
	}
	if input.RemindAt.IsZero() {
		return nil, apierrors.BadRequest("remind_at is required")
	}

	targetID, err := s.ownership.ResolveTargetUserID(actor, input.UserID)
	if err != nil {
		return nil, err
	}

	reminder := &models.Reminder{
		Message:       input.Message,
		RemindAt:      input.RemindAt,
		OwnerUserID:   targetID,
		CreatorUserID: actor.ID,
	}

	if err := s.reminderRepo.Create(reminder); err != nil {
		s.logger.Error("reminder create failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return reminder, nil
}

// ListReminders lists the reminders of the resolved target user.
func (s *ReminderService) ListReminders(actor models.Actor, requestedUserID *uint64, params utils.PaginationParams) ([]models.Reminder, int64, error) {
	targetID, err := s.ownership.ResolveTargetUserID(actor, requestedUserID)
	if err != nil {
		return nil, 0, err
	}

	reminders, total, err := s.reminderRepo.ListByOwner(targetID, params)
	if err != nil {
		s.logger.Error("reminder list failed", zap.Error(err))
		return nil, 0, apierrors.Internal()
	}

	return reminders, total, nil
}

// UpdateReminderInput represents a partial reminder update.
type UpdateReminderInput struct {
	Message     *string
	RemindAt    *time.Time
	IsSent      *bool
	SentAt      *time.Time
	ClearSentAt bool
}

func (in UpdateReminderInput) lockedFields() []string {
	var fields []string
	add := func(name string, set bool) {
		if set && !LockExemptField("reminder", name) {
			fields = append(fields, name)
		}
	}
	add("message", in.Message != nil)
	add("remind_at", in.RemindAt != nil)
	add("is_sent", in.IsSent != nil)
	add("sent_at", in.SentAt != nil || in.ClearSentAt)
	return fields
}

// UpdateReminder applies a partial update under the same creation-lock rules
// as tasks: a locked owner may only progress the sent state.
func (s *ReminderService) UpdateReminder(actor models.Actor, reminderID uint64, input UpdateReminderInput) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.FindByID(reminderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound("Reminder not found")
		}
		s.logger.Error("reminder lookup failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	ok, err := s.ownership.CanActorAccessUser(actor, reminder.OwnerUserID)
	if err != nil {
		s.logger.Error("access check failed", zap.Error(err))
		return nil, apierrors.Internal()
	}
	if !ok {
		return nil, apierrors.Forbidden("")
	}

	if IsLockedForUser(actor, reminder.OwnerUserID, reminder.CreatorUserID) {
		if locked := input.lockedFields(); len(locked) > 0 {
			return nil, apierrors.ForbiddenWithDetails(
				"This reminder was created for you; only its sent state may be changed",
				map[string]interface{}{"locked_fields": locked},
			)
		}
	}

	if input.Message != nil {
		if *input.Message == "" {
			return nil, apierrors.BadRequest("Message cannot be empty")
		}
		reminder.Message = *input.Message
	}
	if input.RemindAt != nil {
		reminder.RemindAt = *input.RemindAt
	}
	if input.IsSent != nil {
		reminder.IsSent = *input.IsSent
		if !*input.IsSent && input.SentAt == nil {
			reminder.SentAt = nil
		}
	}
	if input.ClearSentAt {
		reminder.SentAt = nil
	} else if input.SentAt != nil {
		reminder.SentAt = input.SentAt
	}

	if err := s.reminderRepo.Update(reminder); err != nil {
		s.logger.Error("reminder update failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return reminder, nil
}

// SweepDueReminders marks every due unsent reminder of the resolved target as
// sent in one atomic step and returns exactly the set it flipped. A concurrent
// sweep for the same owner cannot re-fire any of them.
func (s *ReminderService) SweepDueReminders(actor models.Actor, requestedUserID *uint64) ([]models.Reminder, error) {
	targetID, err := s.ownership.ResolveTargetUserID(actor, requestedUserID)
	if err != nil {
		return nil, err
	}

	swept, err := s.reminderRepo.SweepDue(targetID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrSweepConflict) {
			// The race loser reports nothing fired; the winner returned the set.
			return []models.Reminder{}, nil
		}
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return swept, nil
}
