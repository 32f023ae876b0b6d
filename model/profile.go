package model

import (
	"database/sql"
	"time"
)

// Profile holds the optional public profile attached to an author.
type Profile struct {
	ID          int            `json:"id"`
	AuthorID    int            `json:"author_id"`
	FirstName   sql.NullString `json:"first_name"`
	LastName    sql.NullString `json:"last_name"`
	PhoneNumber sql.NullString `json:"phone_number"`
	Avatar      sql.NullString `json:"avatar"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
