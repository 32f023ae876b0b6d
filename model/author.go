package model

import (
	"database/sql"
	"time"
)

// Role is the closed set of author roles. Access checks are membership
// based, there is no implicit hierarchy between roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleModerator || r == RoleUser
}

// Author is the identity record for a registered author.
// At most one refresh token is valid per author at any time: the one
// currently stored in RefreshToken. Any presented token that does not
// match it is treated as stale.
type Author struct {
	ID             int            `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	HashedPassword string         `json:"-"`
	Role           Role           `json:"role"`
	RefreshToken   sql.NullString `json:"-"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
