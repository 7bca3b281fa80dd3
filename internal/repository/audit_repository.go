package repository

import (
	"github.com/sakurada-dev/team-productivity-api/internal/database"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/utils"
	"gorm.io/gorm"
)

// GormAuditLogRepository is a GORM implementation of AuditLogRepository.
// The table is append-only; no update or delete method exists.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append appends one audit entry
func (r *GormAuditLogRepository) Append(entry *models.AdminAuditLog) error {
	return r.db.Create(entry).Error
}

// List returns audit entries, newest first
func (r *GormAuditLogRepository) List(params utils.PaginationParams) ([]models.AdminAuditLog, int64, error) {
	var entries []models.AdminAuditLog

	var total int64
	if err := r.db.Model(&models.AdminAuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
