package repository

import (
	"database/sql"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"

	"github.com/sirupsen/logrus"
)

// IPostRepository defines the contract for post database operations,
// including tag associations.
type IPostRepository interface {
	CreatePost(post *model.Post, categorySlug string) error
	GetAllPosts(limit, offset int) ([]*model.Post, error)
	GetPostsByAuthorID(authorID int) ([]*model.Post, error)
	GetPostByID(id int) (*model.Post, error)
	GetPostBySlug(slug string) (*model.Post, error)
	GetPostByIDAndAuthorID(postID, authorID int) (*model.Post, error)
	UpdatePost(post *model.Post) error
	DeletePost(postID, authorID int) error
	SetPostImage(postID int, filename string) error
	AddTagsToPost(postID int, tagNames []string) error
	RemoveTagFromPost(postID, tagID int) error
	GetTagsByPostID(postID int) ([]*model.Tag, error)
}

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

const postColumns = `id, author_id, category_id, title, slug, content, image, created_at, updated_at`

func scanPost(row *sql.Row) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID, &post.AuthorID, &post.CategoryID, &post.Title, &post.Slug,
		&post.Content, &post.Image, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost inserts a new post and finalizes its slug. The final slug
// includes the post id, which is only known after the insert, so both
// statements run in one transaction.
func (r *PostRepository) CreatePost(post *model.Post, categorySlug string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"author_id":   post.AuthorID,
		"category_id": post.CategoryID,
		"title":       post.Title,
	})
	log.Info("Executing query to create a new post")

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	baseSlug := model.Slugify(post.Title)
	query := `INSERT INTO posts (author_id, category_id, title, slug, content)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query, post.AuthorID, post.CategoryID, post.Title, baseSlug, post.Content).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create post query")
		return err
	}

	post.Slug = fmt.Sprintf("%s-%s-%d", baseSlug, categorySlug, post.ID)
	if _, err := tx.Exec(`UPDATE posts SET slug = $1 WHERE id = $2`, post.Slug, post.ID); err != nil {
		log.WithError(err).Error("Failed to finalize post slug")
		return err
	}

	return tx.Commit()
}

func (r *PostRepository) queryPosts(query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute posts query")
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.CategoryID, &post.Title, &post.Slug,
			&post.Content, &post.Image, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			logger.Log.WithError(err).Error("Failed to scan post row")
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetAllPosts retrieves posts newest first, paginated with limit/offset.
func (r *PostRepository) GetAllPosts(limit, offset int) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryPosts(query, limit, offset)
}

func (r *PostRepository) GetPostsByAuthorID(authorID int) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	return r.queryPosts(query, authorID)
}

func (r *PostRepository) GetPostByID(id int) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.DB.QueryRow(query, id))
}

func (r *PostRepository) GetPostBySlug(slug string) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	return scanPost(r.DB.QueryRow(query, slug))
}

func (r *PostRepository) GetPostByIDAndAuthorID(postID, authorID int) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND author_id = $2`
	return scanPost(r.DB.QueryRow(query, postID, authorID))
}

func (r *PostRepository) UpdatePost(post *model.Post) error {
	log := logger.Log.WithField("post_id", post.ID)
	log.Info("Executing query to update a post")

	query := `UPDATE posts SET title = $1, slug = $2, content = $3, updated_at = NOW()
		WHERE id = $4 RETURNING updated_at`
	err := r.DB.QueryRow(query, post.Title, post.Slug, post.Content, post.ID).Scan(&post.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute update post query")
		return err
	}
	return nil
}

func (r *PostRepository) DeletePost(postID, authorID int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"post_id":   postID,
		"author_id": authorID,
	})
	log.Info("Executing query to delete a post")

	result, err := r.DB.Exec(`DELETE FROM posts WHERE id = $1 AND author_id = $2`, postID, authorID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete post query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostRepository) SetPostImage(postID int, filename string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"post_id": postID,
		"image":   filename,
	})
	log.Info("Executing query to set a post image")

	query := `UPDATE posts SET image = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.DB.Exec(query, filename, postID)
	if err != nil {
		log.WithError(err).Error("Failed to execute set post image query")
	}
	return err
}

// AddTagsToPost upserts the named tags and associates them with the post.
func (r *PostRepository) AddTagsToPost(postID int, tagNames []string) error {
	log := logger.Log.WithField("post_id", postID)
	log.Info("Executing queries to add tags to a post")

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range tagNames {
		var tagID int
		err := tx.QueryRow(
			`INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name,
		).Scan(&tagID)
		if err != nil {
			log.WithError(err).WithField("tag", name).Error("Failed to upsert tag")
			return err
		}

		_, err = tx.Exec(
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tagID,
		)
		if err != nil {
			log.WithError(err).WithField("tag", name).Error("Failed to associate tag with post")
			return err
		}
	}

	return tx.Commit()
}

func (r *PostRepository) RemoveTagFromPost(postID, tagID int) error {
	log := logger.Log.WithFields(logrus.Fields{
		"post_id": postID,
		"tag_id":  tagID,
	})
	log.Info("Executing query to remove a tag from a post")

	result, err := r.DB.Exec(`DELETE FROM post_tags WHERE post_id = $1 AND tag_id = $2`, postID, tagID)
	if err != nil {
		log.WithError(err).Error("Failed to execute remove tag query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostRepository) GetTagsByPostID(postID int) ([]*model.Tag, error) {
	query := `SELECT t.id, t.name FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1 ORDER BY t.name`
	rows, err := r.DB.Query(query, postID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute tags by post query")
		return nil, err
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		tag := &model.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
