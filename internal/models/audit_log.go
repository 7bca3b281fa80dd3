package models

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditActionAssignManager AuditAction = "ASSIGN_MANAGER"
	AuditActionRemoveManager AuditAction = "REMOVE_MANAGER_ROLE"
)

// AdminAuditLog is an append-only record of a privileged mutation.
// Rows are created once and never updated or deleted.
type AdminAuditLog struct {
	ID           uint64          `gorm:"primarykey" json:"id"`
	AdminID      uint64          `gorm:"not null;index" json:"admin_id"`
	TargetUserID uint64          `gorm:"not null;index" json:"target_user_id"`
	Action       AuditAction     `gorm:"type:varchar(40);not null;index" json:"action"`
	Details      json.RawMessage `gorm:"type:json" json:"details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
