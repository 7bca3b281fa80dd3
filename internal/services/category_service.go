package services

import (
	"errors"

	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/models"
	"github.com/sakurada-dev/team-productivity-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryService handles category operations.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	ownership    *OwnershipService
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, ownership *OwnershipService, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		ownership:    ownership,
		logger:       logger,
	}
}

// CreateCategory creates a category for the resolved target user.
func (s *CategoryService) CreateCategory(actor models.Actor, name string, requestedUserID *uint64) (*models.Category, error) {
	if name == "" {
		return nil, apierrors.BadRequest("Name is required")
	}

	targetID, err := s.ownership.ResolveTargetUserID(actor, requestedUserID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:          name,
		OwnerUserID:   targetID,
		CreatorUserID: actor.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		s.logger.Error("category create failed", zap.Error(err))
		return nil, apierrors.Internal()
	}

	return category, nil
}

// ListCategories lists the categories of the resolved target user.
func (s *CategoryService) ListCategories(actor models.Actor, requestedUserID *uint64) ([]models.Category, error) {
	targetID, err := s.ownership.ResolveTargetUserID(actor, requestedUserID)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.ListByOwner(targetID)
	if err != nil {
		s.logger.Error("category list failed", zap.Error(err))
		return nil, apierrors.Internal()
	}
	return categories, nil
}

// DeleteCategory removes a category under the same rules as task deletion: a
// plain user may only remove categories they authored themselves. Tasks and
// notes referencing the category keep existing with the reference nulled.
func (s *CategoryService) DeleteCategory(actor models.Actor, categoryID uint64) error {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound("Category not found")
		}
		s.logger.Error("category lookup failed", zap.Error(err))
		return apierrors.Internal()
	}

	ok, err := s.ownership.CanActorAccessUser(actor, category.OwnerUserID)
	if err != nil {
		s.logger.Error("access check failed", zap.Error(err))
		return apierrors.Internal()
	}
	if !ok {
		return apierrors.Forbidden("")
	}

	if actor.Role == models.RoleUser && category.CreatorUserID != actor.ID {
		return apierrors.Forbidden("This category was created for you and can only be removed by its creator")
	}

	if err := s.categoryRepo.Delete(category.ID); err != nil {
		s.logger.Error("category delete failed", zap.Error(err))
		return apierrors.Internal()
	}
	return nil
}
