package handler

import (
	"encoding/json"
	"errors"
	"go-blog-api/common"
	"go-blog-api/service"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// mapServiceError translates service-layer sentinel errors into the
// HTTP taxonomy: 403 bad credentials or forbidden, 401 token problems,
// 409 conflicts, 404 missing resources, 500 everything else.
func mapServiceError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return common.NewAppError(http.StatusForbidden, "Invalid email or password", nil)
	case errors.Is(err, service.ErrForbidden):
		return common.NewAppError(http.StatusForbidden, "Operation forbidden", nil)
	case errors.Is(err, service.ErrUnauthenticated):
		return common.NewAppError(http.StatusUnauthorized, "Could not validate credentials", err)
	case errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrInvalidScope):
		return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", err)
	case errors.Is(err, service.ErrWeakPassword):
		return common.NewAppError(http.StatusBadRequest, "Password must contain at least one uppercase letter, one number and one symbol", nil)
	case errors.Is(err, service.ErrEmailTaken):
		return common.NewAppError(http.StatusConflict, "Author with such email already exists", nil)
	case errors.Is(err, service.ErrCategoryTaken):
		return common.NewAppError(http.StatusConflict, "The name of the category already exists", nil)
	case errors.Is(err, service.ErrProfileExists):
		return common.NewAppError(http.StatusConflict, "Profile for this author already exists", nil)
	case errors.Is(err, service.ErrAuthorNotFound):
		return common.NewAppError(http.StatusNotFound, "Author not found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		return common.NewAppError(http.StatusNotFound, "Category not found", nil)
	case errors.Is(err, service.ErrPostNotFound):
		return common.NewAppError(http.StatusNotFound, "Post not found", nil)
	case errors.Is(err, service.ErrProfileNotFound):
		return common.NewAppError(http.StatusNotFound, "Author profile not found", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}
