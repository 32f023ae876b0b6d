package model

import (
	"database/sql"
	"regexp"
	"strings"
	"time"
)

// Post is a published blog entry. The slug is derived from the title at
// creation time and made unique by appending the category slug and the
// post id.
type Post struct {
	ID         int            `json:"id"`
	AuthorID   int            `json:"author_id"`
	CategoryID int            `json:"category_id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Content    string         `json:"content"`
	Image      sql.NullString `json:"image"`
	Tags       []*Tag         `json:"tags,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts an arbitrary title into a url-safe slug.
func Slugify(s string) string {
	slug := slugCleanup.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
