package router

import (
	"go-blog-api/common"
	"go-blog-api/handler"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-blog-api/docs"
)

// NewRouter wires every route to its handler with the right guard
// chain. Authentication always runs before any role guard.
func NewRouter(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	authorHandler *handler.AuthorHandler,
	categoryHandler *handler.CategoryHandler,
	postHandler *handler.PostHandler,
	tagHandler *handler.TagHandler,
	mediaDir string,
) http.Handler {
	mux := http.NewServeMux()

	authRequired := handler.AuthMiddleware(authService)
	adminOnly := handler.NewRoleAccess(model.RoleAdmin)
	adminOrModerator := handler.NewRoleAccess(model.RoleAdmin, model.RoleModerator)

	public := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return handler.ErrorHandlingMiddleware(h)
	}
	protected := func(h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return authRequired(handler.ErrorHandlingMiddleware(h))
	}
	guarded := func(guard *handler.RoleAccess, h func(http.ResponseWriter, *http.Request) *common.AppError) http.Handler {
		return authRequired(guard.Middleware(handler.ErrorHandlingMiddleware(h)))
	}

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))

	// Auth
	mux.Handle("POST /auth/register", public(authHandler.Register))
	mux.Handle("POST /auth/login", public(authHandler.Login))
	mux.Handle("GET /auth/refresh_token", public(authHandler.RefreshToken))
	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))

	// Authors
	mux.Handle("GET /api/authors", guarded(adminOnly, authorHandler.ListAuthors))
	mux.Handle("GET /api/authors/me", protected(authorHandler.Me))
	mux.Handle("POST /api/authors/me/change_password", protected(authorHandler.ChangePassword))
	mux.Handle("PATCH /api/authors/change_role", guarded(adminOnly, authorHandler.ChangeRole))
	mux.Handle("POST /api/authors/me/profile", protected(authorHandler.CreateProfile))
	mux.Handle("PATCH /api/authors/me/profile", protected(authorHandler.UpdateProfile))
	mux.Handle("DELETE /api/authors/me/profile", protected(authorHandler.DeleteProfile))
	mux.Handle("POST /api/authors/me/profile/upload-image", protected(authorHandler.UploadAvatar))
	mux.Handle("GET /api/authors/{id}/profile", public(authorHandler.GetProfile))
	mux.Handle("GET /api/authors/me/posts", protected(postHandler.MyPosts))

	// Categories
	mux.Handle("POST /api/v1/categories", guarded(adminOrModerator, categoryHandler.CreateCategory))
	mux.Handle("GET /api/v1/categories", public(categoryHandler.ListCategories))
	mux.Handle("GET /api/v1/categories/{id}", public(categoryHandler.GetCategory))
	mux.Handle("PUT /api/v1/categories/{id}", guarded(adminOrModerator, categoryHandler.UpdateCategory))
	mux.Handle("DELETE /api/v1/categories/{id}", guarded(adminOrModerator, categoryHandler.DeleteCategory))

	// Posts
	mux.Handle("POST /api/v1/posts", protected(postHandler.CreatePost))
	mux.Handle("GET /api/v1/posts", public(postHandler.ListPosts))
	mux.Handle("GET /api/v1/posts/{slug}", public(postHandler.GetPost))
	mux.Handle("PATCH /api/v1/posts/{id}", protected(postHandler.UpdatePost))
	mux.Handle("DELETE /api/v1/posts/{id}", protected(postHandler.DeletePost))
	mux.Handle("POST /api/v1/posts/{id}/upload-image", protected(postHandler.UploadImage))
	mux.Handle("POST /api/v1/posts/{id}/add_tags", protected(postHandler.AddTags))
	mux.Handle("DELETE /api/v1/posts/{id}/remove_tag", protected(postHandler.RemoveTag))

	// Tags
	mux.Handle("GET /api/v1/tags", public(tagHandler.ListTags))
	mux.Handle("GET /api/v1/tags/{id}", public(tagHandler.GetTag))
	mux.Handle("PUT /api/v1/tags/{id}", guarded(adminOrModerator, tagHandler.UpdateTag))
	mux.Handle("DELETE /api/v1/tags/{id}", guarded(adminOrModerator, tagHandler.DeleteTag))

	return mux
}
