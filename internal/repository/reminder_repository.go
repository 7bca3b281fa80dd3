package repository

import (
	"errors"
	"time"

	"github.com/sakurada-dev/team-productivity-api/internal/database"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
	"gorm.io/gorm"
)

// ErrSweepConflict is returned when a concurrent sweep marked one of the
// selected reminders first. The transaction is rolled back; nothing fires twice.
var ErrSweepConflict = errors.New("reminder repository: concurrent sweep detected")

// GormReminderRepository is a GORM implementation of ReminderRepository
type GormReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create creates a new reminder
func (r *GormReminderRepository) Create(reminder *models.Reminder) error {
	return r.db.Create(reminder).Error
}

// FindByID finds a reminder by ID
func (r *GormReminderRepository) FindByID(id uint64) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.First(&reminder, id).Error; err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListByOwner lists an owner's reminders
func (r *GormReminderRepository) ListByOwner(ownerID uint64, params utils.PaginationParams) ([]models.Reminder, int64, error) {
	var reminders []models.Reminder

	query := r.db.Model(&models.Reminder{}).Where("owner_user_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("remind_at ASC").
		Scopes(database.Paginate(params)).
		Find(&reminders).Error
	if err != nil {
		return nil, 0, err
	}

	return reminders, total, nil
}

// Update updates a reminder
func (r *GormReminderRepository) Update(reminder *models.Reminder) error {
	return r.db.Save(reminder).Error
}

// SweepDue atomically marks every due unsent reminder of an owner as sent.
// The select and the conditional mark run in one transaction; the mark is
// guarded on is_sent = false, so a row a concurrent sweep already flipped
// fails the count check and rolls the whole sweep back.
func (r *GormReminderRepository) SweepDue(ownerID uint64, now time.Time) ([]models.Reminder, error) {
	var swept []models.Reminder

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var due []models.Reminder
		err := tx.Where("owner_user_id = ? AND is_sent = ? AND remind_at <= ?", ownerID, false, now).
			Order("remind_at ASC").
			Find(&due).Error
		if err != nil {
			return err
		}
		if len(due) == 0 {
			swept = []models.Reminder{}
			return nil
		}

		ids := make([]uint64, len(due))
		for i, rem := range due {
			ids[i] = rem.ID
		}

		sentAt := now
		res := tx.Model(&models.Reminder{}).
			Where("id IN ? AND is_sent = ?", ids, false).
			Updates(map[string]interface{}{"is_sent": true, "sent_at": sentAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return ErrSweepConflict
		}

		for i := range due {
			due[i].IsSent = true
			due[i].SentAt = &sentAt
		}
		swept = due
		return nil
	})
	if err != nil {
		return nil, err
	}

	return swept, nil
}
