package handler

import (
	"go-blog-api/common"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// maxImageUploadBytes caps post image uploads at 8 MiB.
const maxImageUploadBytes = 8 << 20

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func pathID(r *http.Request, name string) (int, *common.AppError) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid "+name+" in path", err)
	}
	return id, nil
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        category_id query int true "Category ID"
// @Param        request body model.PostRequest true "Post payload"
// @Success      201  {object}  model.Post
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/posts [post]
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	categoryID, err := strconv.Atoi(r.URL.Query().Get("category_id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid category_id query parameter", err)
	}

	var req model.PostRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	post, svcErr := h.postService.CreatePost(author.ID, categoryID, req)
	if svcErr != nil {
		return mapServiceError(svcErr)
	}

	logger.Log.WithFields(logrus.Fields{
		"author_id": author.ID,
		"slug":      post.Slug,
	}).Info("Post created")

	writeJSON(w, http.StatusCreated, post)
	return nil
}

// ListPosts godoc
// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Param        limit query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {array}  model.Post
// @Router       /api/v1/posts [get]
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) *common.AppError {
	limit := service.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return common.NewAppError(http.StatusBadRequest, "Invalid limit query parameter", err)
		}
		limit = parsed
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return common.NewAppError(http.StatusBadRequest, "Invalid offset query parameter", err)
		}
		offset = parsed
	}

	posts, err := h.postService.ListPosts(limit, offset)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve posts", err)
	}

	writeJSON(w, http.StatusOK, posts)
	return nil
}

// MyPosts godoc
// @Summary      List the current author's posts, newest first
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  model.Post
// @Router       /api/authors/me/posts [get]
func (h *PostHandler) MyPosts(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	posts, err := h.postService.GetPostsByAuthor(author.ID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve posts", err)
	}

	writeJSON(w, http.StatusOK, posts)
	return nil
}

// GetPost godoc
// @Summary      Get a single post by slug
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  model.Post
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/posts/{slug} [get]
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) *common.AppError {
	post, err := h.postService.GetPostBySlug(r.PathValue("slug"))
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, post)
	return nil
}

// UpdatePost godoc
// @Summary      Partially update an owned post
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body model.PostUpdateRequest true "Post update payload"
// @Success      200  {object}  model.Post
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/posts/{id} [patch]
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	postID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.PostUpdateRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	post, err := h.postService.UpdatePost(author.ID, postID, req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, post)
	return nil
}

// DeletePost godoc
// @Summary      Delete an owned post
// @Tags         posts
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      204
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/posts/{id} [delete]
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	postID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	if err := h.postService.DeletePost(author.ID, postID); err != nil {
		return mapServiceError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// UploadImage godoc
// @Summary      Upload an image for an owned post
// @Tags         posts
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        file formData file true "Image file (.jpg or .png)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Router       /api/v1/posts/{id}/upload-image [post]
func (h *PostHandler) UploadImage(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	postID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Missing file in multipart form", err)
	}
	defer file.Close()

	if err := common.ValidateImageFilename(header.Filename); err != nil {
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	}

	if _, err := h.postService.UploadPostImage(author.ID, postID, file, header.Filename); err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post image uploaded successfully"})
	return nil
}

// AddTags godoc
// @Summary      Attach tags to an owned post
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Param        request body model.AddTagsRequest true "Tag names"
// @Success      200  {object}  map[string]string
// @Router       /api/v1/posts/{id}/add_tags [post]
func (h *PostHandler) AddTags(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	postID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	var req model.AddTagsRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.postService.AddTags(author.ID, postID, req.Tags); err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Tags added to post successfully"})
	return nil
}

// RemoveTag godoc
// @Summary      Detach a tag from an owned post
// @Tags         posts
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Param        tag_id query int true "Tag ID"
// @Success      204
// @Router       /api/v1/posts/{id}/remove_tag [delete]
func (h *PostHandler) RemoveTag(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	postID, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}

	tagID, err := strconv.Atoi(r.URL.Query().Get("tag_id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid tag_id query parameter", err)
	}

	if err := h.postService.RemoveTag(author.ID, postID, tagID); err != nil {
		return mapServiceError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
