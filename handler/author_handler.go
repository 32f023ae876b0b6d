package handler

import (
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
	"strconv"
)

type AuthorHandler struct {
	authorService  *service.AuthorService
	profileService *service.ProfileService
}

func NewAuthorHandler(authorService *service.AuthorService, profileService *service.ProfileService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService, profileService: profileService}
}

// Me godoc
// @Summary      Get the current author
// @Tags         authors
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  model.Author
// @Router       /api/authors/me [get]
func (h *AuthorHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	writeJSON(w, http.StatusOK, author)
	return nil
}

// ChangePassword godoc
// @Summary      Change the current author's password
// @Tags         authors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body model.ChangePasswordRequest true "Password change payload"
// @Success      200  {object}  map[string]string
// @Router       /api/authors/me/change_password [post]
func (h *AuthorHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var req model.ChangePasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.authorService.ChangePassword(author, req); err != nil {
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Your password changed successfully"})
	return nil
}

// ChangeRole godoc
// @Summary      Change any author's role
// @Description  admin only
// @Tags         authors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body model.ChangeRoleRequest true "Role change payload"
// @Success      200  {object}  model.Author
// @Failure      403  {object}  common.AppError
// @Router       /api/authors/change_role [patch]
func (h *AuthorHandler) ChangeRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.ChangeRoleRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	author, err := h.authorService.ChangeRole(req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, author)
	return nil
}

// ListAuthors godoc
// @Summary      List all authors
// @Description  admin only
// @Tags         authors
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  model.Author
// @Router       /api/authors [get]
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) *common.AppError {
	authors, err := h.authorService.GetAllAuthors()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve authors", err)
	}

	writeJSON(w, http.StatusOK, authors)
	return nil
}

// CreateProfile godoc
// @Summary      Create the current author's profile
// @Tags         authors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body model.ProfileRequest true "Profile payload"
// @Success      201  {object}  model.Profile
// @Failure      409  {object}  common.AppError
// @Router       /api/authors/me/profile [post]
func (h *AuthorHandler) CreateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var req model.ProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.profileService.CreateProfile(author.ID, req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusCreated, profile)
	return nil
}

// UpdateProfile godoc
// @Summary      Partially update the current author's profile
// @Tags         authors
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body model.ProfileRequest true "Profile payload"
// @Success      200  {object}  model.Profile
// @Router       /api/authors/me/profile [patch]
func (h *AuthorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var req model.ProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	profile, err := h.profileService.UpdateProfile(author.ID, req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

// DeleteProfile godoc
// @Summary      Delete the current author's profile
// @Tags         authors
// @Security     BearerAuth
// @Success      204
// @Router       /api/authors/me/profile [delete]
func (h *AuthorHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	if err := h.profileService.DeleteProfile(author.ID); err != nil {
		return mapServiceError(err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GetProfile godoc
// @Summary      Get an author's public profile
// @Tags         authors
// @Produce      json
// @Param        id path int true "Author ID"
// @Success      200  {object}  model.Profile
// @Failure      404  {object}  common.AppError
// @Router       /api/authors/{id}/profile [get]
func (h *AuthorHandler) GetProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	authorID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid author id", err)
	}

	profile, err := h.profileService.GetProfile(authorID)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

// UploadAvatar godoc
// @Summary      Upload an avatar for the current author's profile
// @Tags         authors
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file (.jpg or .png)"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  common.AppError
// @Router       /api/authors/me/profile/upload-image [post]
func (h *AuthorHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
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

	if _, err := h.profileService.UploadAvatar(author.ID, file, header.Filename); err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile avatar uploaded successfully"})
	return nil
}
