package dto

// CreateCategoryRequest is the request body for POST /api/categories.
// UserID targets another user's category list; omitted means the caller.
type CreateCategoryRequest struct {
	Name   string  `json:"name" binding:"required"`
	UserID *uint64 `json:"user_id"`
}
