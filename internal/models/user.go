package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	ManagerID    *uint64        `gorm:"index" json:"manager_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager *User  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Tasks   []Task `gorm:"foreignKey:OwnerUserID" json:"-"`
}

// Actor is the authenticated caller of a request, resolved once by the
// auth middleware and passed explicitly into every service operation.
type Actor struct {
	ID        uint64
	Role      Role
	IsActive  bool
	ManagerID *uint64
}

// ActorFromUser builds the request-scoped Actor view of a user row.
func ActorFromUser(u *User) Actor {
	return Actor{
		ID:        u.ID,
		Role:      u.Role,
		IsActive:  u.IsActive,
		ManagerID: u.ManagerID,
	}
}
