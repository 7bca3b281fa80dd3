package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakurada-dev/team-productivity-api/internal/dto"
	apierrors "github.com/sakurada-dev/team-productivity-api/internal/errors"
	"github.com/sakurada-dev/team-productivity-api/internal/services"
)

// CategoryHandler coordinates category-related HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns the categories of the requested user (self by default).
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	requestedUserID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(actor, requestedUserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
	})
}

// CreateCategory creates a category for the resolved target user.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, apierrors.BadRequest("Invalid request body"))
		return
	}

	category, err := h.categoryService.CreateCategory(actor, req.Name, req.UserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes a category, nulling references on tasks and notes.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(actor, categoryID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted",
	})
}
