package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Location      string         `gorm:"type:varchar(255)" json:"location"`
	StartsAt      time.Time      `gorm:"not null" json:"starts_at"`
	EndsAt        *time.Time     `json:"ends_at"`
	OwnerUserID   uint64         `gorm:"not null;index" json:"owner_user_id"`
	CreatorUserID uint64         `gorm:"not null;index" json:"creator_user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
