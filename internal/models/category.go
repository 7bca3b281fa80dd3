package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups an owner's tasks and notes. Deleting a category nulls the
// category reference on its tasks and notes rather than deleting them.
type Category struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	OwnerUserID   uint64         `gorm:"not null;index" json:"owner_user_id"`
	CreatorUserID uint64         `gorm:"not null;index" json:"creator_user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
