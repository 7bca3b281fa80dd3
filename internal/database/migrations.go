package database

import (
	"fmt"

	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	// Composite and sort-order indexes that the model tags do not declare.
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Task list filtering and sorting
		{&models.Task{}, "tasks", "idx_tasks_status", "status"},
		{&models.Task{}, "tasks", "idx_tasks_due_date", "due_date"},

		// Reminder index backing the dispatch sweep
		{&models.Reminder{}, "reminders", "idx_reminders_sweep", "owner_user_id, is_sent, remind_at"},

		// Session expiry cleanup
		{&models.Session{}, "sessions", "idx_sessions_expires_at", "expires_at"},

		// Audit trail, listed newest first
		{&models.AdminAuditLog{}, "admin_audit_logs", "idx_admin_audit_logs_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
