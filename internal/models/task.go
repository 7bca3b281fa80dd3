package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo TaskStatus = "todo"
	TaskStatusDone TaskStatus = "done"
)

type Task struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Status        TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate       *time.Time     `json:"due_date"`
	CompletedAt   *time.Time     `json:"completed_at"`
	CategoryID    *uint64        `gorm:"index" json:"category_id"`
	OwnerUserID   uint64         `gorm:"not null;index" json:"owner_user_id"`
	CreatorUserID uint64         `gorm:"not null;index" json:"creator_user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User      `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
	Creator  User      `gorm:"foreignKey:CreatorUserID" json:"creator,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Delegated reports whether the task was authored on the owner's behalf.
func (t *Task) Delegated() bool {
	return t.CreatorUserID != t.OwnerUserID
}
