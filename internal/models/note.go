package models

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Body          string         `gorm:"type:text" json:"body"`
	CategoryID    *uint64        `gorm:"index" json:"category_id"`
	OwnerUserID   uint64         `gorm:"not null;index" json:"owner_user_id"`
	CreatorUserID uint64         `gorm:"not null;index" json:"creator_user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
