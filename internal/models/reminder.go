package models

import (
	"time"

	"gorm.io/gorm"
)

type Reminder struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Message       string         `gorm:"not null" json:"message"`
	RemindAt      time.Time      `gorm:"not null;index" json:"remind_at"`
	IsSent        bool           `gorm:"not null;default:false;index" json:"is_sent"`
	SentAt        *time.Time     `json:"sent_at"`
	OwnerUserID   uint64         `gorm:"not null;index" json:"owner_user_id"`
	CreatorUserID uint64         `gorm:"not null;index" json:"creator_user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
