package handler

import (
	"go-blog-api/common"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
	"time"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// tokenResponse is the login/refresh response body. The refresh token
// itself travels only in the http-only cookie, never in the body.
type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	Author      *model.Author `json:"author"`
}

func setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// Register godoc
// @Summary      Register a new author
// @Description  create an author account with the default user role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Registration payload"
// @Success      201  {object}  model.Author
// @Failure      409  {object}  common.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	author, err := h.authService.Register(req)
	if err != nil {
		return mapServiceError(err)
	}

	writeJSON(w, http.StatusCreated, author)
	return nil
}

// Login godoc
// @Summary      Log an author in
// @Description  verify credentials and issue an access/refresh token pair
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username formData string true "Author email"
// @Param        password formData string true "Password"
// @Success      200  {object}  tokenResponse
// @Failure      403  {object}  common.AppError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	if err := r.ParseForm(); err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid form body", err)
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		return common.NewAppError(http.StatusBadRequest, "Username and password are required", nil)
	}

	pair, author, err := h.authService.Login(email, password)
	if err != nil {
		return mapServiceError(err)
	}

	setRefreshCookie(w, pair.RefreshToken, h.authService.RefreshTTL())
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		Author:      author,
	})
	return nil
}

// RefreshToken godoc
// @Summary      Rotate the refresh token
// @Description  read the refresh token from the cookie and issue a fresh pair
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  common.AppError
// @Router       /auth/refresh_token [get]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return common.NewAppError(http.StatusUnauthorized, "Refresh token cookie is missing", err)
	}

	pair, author, err := h.authService.Refresh(cookie.Value)
	if err != nil {
		clearRefreshCookie(w)
		return mapServiceError(err)
	}

	setRefreshCookie(w, pair.RefreshToken, h.authService.RefreshTTL())
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		Author:      author,
	})
	return nil
}

// Logout godoc
// @Summary      Log the current author out
// @Description  clear the stored refresh token and the cookie
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, ok := CurrentAuthor(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	if err := h.authService.Logout(author.ID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
	}

	logger.Log.WithField("email", author.Email).Info("Author logged out")
	clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
	return nil
}
