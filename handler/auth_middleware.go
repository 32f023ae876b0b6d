package handler

import (
	"context"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
	"strings"
)

type contextKey string

const CurrentAuthorKey contextKey = "currentAuthor"

// AuthMiddleware resolves the bearer access token into the author it
// belongs to and stores that author in the request context. It owns
// all identity resolution; guards downstream only look at the result.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				err := common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
				err.Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				err := common.NewAppError(http.StatusUnauthorized, "Invalid authorization header format", nil)
				err.Send(w)
				return
			}

			author, err := authService.GetCurrentAuthor(headerParts[1])
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Could not validate credentials", err)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), CurrentAuthorKey, author)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentAuthor pulls the authenticated author out of the request
// context. It only returns something after AuthMiddleware has run.
func CurrentAuthor(r *http.Request) (*model.Author, bool) {
	author, ok := r.Context().Value(CurrentAuthorKey).(*model.Author)
	return author, ok
}

// RoleAccess authorizes an already-authenticated author against a fixed
// allow-list of roles. It is a pure guard: it never resolves identity
// itself and must always run after AuthMiddleware.
type RoleAccess struct {
	allowedRoles []model.Role
}

func NewRoleAccess(allowedRoles ...model.Role) *RoleAccess {
	return &RoleAccess{allowedRoles: allowedRoles}
}

// Check returns nil when the author's role is in the allow-list.
// Membership only; there is no role hierarchy.
func (ra *RoleAccess) Check(author *model.Author) *common.AppError {
	for _, role := range ra.allowedRoles {
		if author.Role == role {
			return nil
		}
	}
	return common.NewAppError(http.StatusForbidden, "Operation forbidden", nil)
}

// Middleware adapts the guard for route composition.
func (ra *RoleAccess) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		author, ok := CurrentAuthor(r)
		if !ok {
			err := common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
			err.Send(w)
			return
		}

		if err := ra.Check(author); err != nil {
			err.Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
