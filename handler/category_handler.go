package handler

import (
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory godoc
// @Summary      Create a category
// @Description  admin and moderator only
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body model.CategoryRequest true "Category payload"
// @Success      201  {object}  model.Category
// @Failure      409  {object}  common.AppError
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CategoryRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusCreated, category)
	return nil
}

// ListCategories godoc
// @Summary      List all categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  model.Category
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) *common.AppError {
	categories, err := h.categoryService.GetAllCategories()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve categories", err)
	}

	writeJSON(w, http.StatusOK, categories)
	return nil
}

// GetCategory godoc
// @Summary      Get a single category
// @Tags         categories
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200  {object}  model.Category
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, category)
	return nil
}

// UpdateCategory godoc
// @Summary      Rename a category
// @Description  admin and moderator only
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Category ID"
// @Param        request body model.CategoryRequest true "Category payload"
// @Success      200  {object}  model.Category
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.CategoryRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	category, err := h.categoryService.UpdateCategory(id, req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, category)
	return nil
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  admin and moderator only
// @Tags         categories
// @Security     BearerAuth
// @Param        id path int true "Category ID"
// @Success      204
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		return mapServiceError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
