package repository

import (
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByManagerID lists the users assigned to a manager
func (r *GormUserRepository) ListByManagerID(managerID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("manager_id = ?", managerID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// IsTeamMember reports whether userID is currently assigned to managerID
func (r *GormUserRepository) IsTeamMember(managerID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id = ? AND manager_id = ?", userID, managerID).
		Count(&count).Error
	return count > 0, err
}
