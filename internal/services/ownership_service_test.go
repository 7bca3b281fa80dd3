package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newOwnershipFixture(t *testing.T) (*gorm.DB, *OwnershipService) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return db, NewOwnershipService(repository.NewUserRepository(db))
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role, managerID *uint64) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed",
		Role:         role,
		IsActive:     true,
		ManagerID:    managerID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCanActorAccessUser(t *testing.T) {
	db, ownership := newOwnershipFixture(t)

	admin := createUser(t, db, "admin@example.com", models.RoleAdmin, nil)
	manager := createUser(t, db, "manager@example.com", models.RoleManager, nil)
	report := createUser(t, db, "report@example.com", models.RoleUser, &manager.ID)
	stranger := createUser(t, db, "stranger@example.com", models.RoleUser, nil)

	tests := []struct {
		name     string
		actor    *models.User
		targetID uint64
		want     bool
	}{
		{"admin accesses anyone", admin, stranger.ID, true},
		{"admin accesses self", admin, admin.ID, true},
		{"user accesses self", stranger, stranger.ID, true},
		{"user cannot access other user", stranger, report.ID, false},
		{"user cannot access admin", stranger, admin.ID, false},
		{"manager accesses self", manager, manager.ID, true},
		{"manager accesses report", manager, report.ID, true},
		{"manager cannot access non-report", manager, stranger.ID, false},
		{"report cannot access manager", report, manager.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ownership.CanActorAccessUser(models.ActorFromUser(tt.actor), tt.targetID)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanActorAccessUser_UnassignedReport(t *testing.T) {
	db, ownership := newOwnershipFixture(t)

	manager := createUser(t, db, "manager@example.com", models.RoleManager, nil)
	report := createUser(t, db, "report@example.com", models.RoleUser, &manager.ID)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", report.ID).
		Update("manager_id", nil).Error)

	got, err := ownership.CanActorAccessUser(models.ActorFromUser(manager), report.ID)
	assert.NoError(t, err)
	assert.False(t, got)
}

func TestResolveTargetUserID(t *testing.T) {
	db, ownership := newOwnershipFixture(t)

	manager := createUser(t, db, "manager@example.com", models.RoleManager, nil)
	report := createUser(t, db, "report@example.com", models.RoleUser, &manager.ID)
	stranger := createUser(t, db, "stranger@example.com", models.RoleUser, nil)

	// Absent requested ID defaults to the actor.
	id, err := ownership.ResolveTargetUserID(models.ActorFromUser(stranger), nil)
	assert.NoError(t, err)
	assert.Equal(t, stranger.ID, id)

	// Manager resolving a report.
	id, err = ownership.ResolveTargetUserID(models.ActorFromUser(manager), &report.ID)
	assert.NoError(t, err)
	assert.Equal(t, report.ID, id)

	// A plain user naming someone else is forbidden.
	_, err = ownership.ResolveTargetUserID(models.ActorFromUser(stranger), &report.ID)
	assertAPIError(t, err, 403)
}

func TestIsLockedForUser(t *testing.T) {
	owner := models.Actor{ID: 10, Role: models.RoleUser, IsActive: true}
	managerActor := models.Actor{ID: 20, Role: models.RoleManager, IsActive: true}
	adminActor := models.Actor{ID: 30, Role: models.RoleAdmin, IsActive: true}

	// Owner editing content someone else authored for them is locked.
	assert.True(t, IsLockedForUser(owner, 10, 20))
	// Self-authored content is never locked.
	assert.False(t, IsLockedForUser(owner, 10, 10))
	// Managers and admins are never locked.
	assert.False(t, IsLockedForUser(managerActor, 10, 20))
	assert.False(t, IsLockedForUser(adminActor, 10, 20))
}

func TestLockExemptField(t *testing.T) {
	assert.True(t, LockExemptField("task", "status"))
	assert.True(t, LockExemptField("task", "completed_at"))
	assert.False(t, LockExemptField("task", "title"))
	assert.False(t, LockExemptField("task", "due_date"))

	assert.True(t, LockExemptField("reminder", "is_sent"))
	assert.True(t, LockExemptField("reminder", "sent_at"))
	assert.False(t, LockExemptField("reminder", "message"))

	// Unknown resource types expose no exemptions.
	assert.False(t, LockExemptField("note", "status"))
}
