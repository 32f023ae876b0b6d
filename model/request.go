// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new author.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ChangePasswordRequest defines the payload for changing the current
// author's password.
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// ChangeRoleRequest defines the payload for updating an author's role.
type ChangeRoleRequest struct {
	AuthorID int  `json:"author_id" validate:"required"`
	Role     Role `json:"role" validate:"required,oneof=admin moderator user"`
}

// ProfileRequest defines the payload for creating or partially updating
// an author profile. All fields are optional on PATCH.
type ProfileRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,max=50"`
	LastName    string `json:"last_name" validate:"omitempty,max=50"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
}

// CategoryRequest defines the payload for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// PostRequest defines the payload for creating a post.
type PostRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=255"`
	Content string `json:"content" validate:"required,max=500"`
}

// PostUpdateRequest defines the payload for partially updating a post.
type PostUpdateRequest struct {
	Title   string `json:"title" validate:"omitempty,min=3,max=255"`
	Content string `json:"content" validate:"omitempty,max=500"`
}

// TagRequest defines the payload for renaming a tag.
type TagRequest struct {
	Name string `json:"name" validate:"required,min=3,max=30"`
}

// AddTagsRequest defines the payload for attaching tags to a post.
type AddTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1,dive,min=1,max=50"`
}
