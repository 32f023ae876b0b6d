package handler

import (
	"database/sql"
	"errors"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/repository"
	"net/http"
)

type TagHandler struct {
	Repo repository.ITagRepository
}

func NewTagHandler(repo repository.ITagRepository) *TagHandler {
	return &TagHandler{Repo: repo}
}

// ListTags godoc
// @Summary      List all tags
// @Tags         tags
// @Produce      json
// @Success      200  {array}  model.Tag
// @Router       /api/v1/tags [get]
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) *common.AppError {
	tags, err := h.Repo.GetAllTags()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve tags", err)
	}

	writeJSON(w, http.StatusOK, tags)
	return nil
}

// GetTag godoc
// @Summary      Get a single tag
// @Tags         tags
// @Produce      json
// @Param        id path int true "Tag ID"
// @Success      200  {object}  model.Tag
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/tags/{id} [get]
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	tag, err := h.Repo.GetTagByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Tag not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve tag", err)
	}

	writeJSON(w, http.StatusOK, tag)
	return nil
}

// UpdateTag godoc
// @Summary      Rename a tag
// @Description  admin and moderator only
// @Tags         tags
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Tag ID"
// @Param        request body model.TagRequest true "Tag payload"
// @Success      200  {object}  model.Tag
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/tags/{id} [put]
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.TagRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	tag, err := h.Repo.UpdateTag(id, req.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Tag not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not update tag", err)
	}

	writeJSON(w, http.StatusOK, tag)
	return nil
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  admin and moderator only; the tag is detached from all posts
// @Tags         tags
// @Security     BearerAuth
// @Param        id path int true "Tag ID"
// @Success      204
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/tags/{id} [delete]
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.Repo.DeleteTag(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewAppError(http.StatusNotFound, "Tag not found", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not delete tag", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
