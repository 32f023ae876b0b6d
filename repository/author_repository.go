package repository

import (
	"database/sql"
	"go-blog-api/logger"
	"go-blog-api/model"

	"github.com/sirupsen/logrus"
)

// IAuthorRepository defines the contract for author database operations.
type IAuthorRepository interface {
	CreateAuthor(author *model.Author) error
	GetAuthorByEmail(email string) (*model.Author, error)
	GetAuthorByID(id int) (*model.Author, error)
	GetAllAuthors() ([]*model.Author, error)
	SetRefreshToken(authorID int, token sql.NullString) error
	RotateRefreshToken(authorID int, current sql.NullString, next sql.NullString) (bool, error)
	ClearRefreshToken(authorID int) error
	UpdateRole(authorID int, role string) error
	UpdatePassword(email, hashedPassword string) error
}

// AuthorRepository implements IAuthorRepository on top of PostgreSQL.
type AuthorRepository struct {
	DB *sql.DB
}

func NewAuthorRepository(db *sql.DB) *AuthorRepository {
	return &AuthorRepository{DB: db}
}

const authorColumns = `id, username, email, hashed_password, role, refresh_token, is_active, created_at, updated_at`

func scanAuthor(row *sql.Row) (*model.Author, error) {
	author := &model.Author{}
	err := row.Scan(
		&author.ID, &author.Username, &author.Email, &author.HashedPassword,
		&author.Role, &author.RefreshToken, &author.IsActive,
		&author.CreatedAt, &author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return author, nil
}

func (r *AuthorRepository) CreateAuthor(author *model.Author) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username": author.Username,
		"email":    author.Email,
	})
	log.Info("Executing query to create a new author")

	query := `INSERT INTO authors (username, email, hashed_password) VALUES ($1, $2, $3)
		RETURNING id, role, is_active, created_at, updated_at`
	err := r.DB.QueryRow(query, author.Username, author.Email, author.HashedPassword).
		Scan(&author.ID, &author.Role, &author.IsActive, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create author query")
		return err
	}
	return nil
}

func (r *AuthorRepository) GetAuthorByEmail(email string) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE email = $1`
	return scanAuthor(r.DB.QueryRow(query, email))
}

func (r *AuthorRepository) GetAuthorByID(id int) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	return scanAuthor(r.DB.QueryRow(query, id))
}

// GetAllAuthors retrieves every registered author. For admin use only.
func (r *AuthorRepository) GetAllAuthors() ([]*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY id`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all authors")
		return nil, err
	}
	defer rows.Close()

	var authors []*model.Author
	for rows.Next() {
		author := &model.Author{}
		if err := rows.Scan(
			&author.ID, &author.Username, &author.Email, &author.HashedPassword,
			&author.Role, &author.RefreshToken, &author.IsActive,
			&author.CreatedAt, &author.UpdatedAt,
		); err != nil {
			logger.Log.WithError(err).Error("Failed to scan author row")
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

// SetRefreshToken unconditionally replaces the stored refresh token.
// Login uses it: a fresh login always wins over any earlier session.
func (r *AuthorRepository) SetRefreshToken(authorID int, token sql.NullString) error {
	log := logger.Log.WithField("author_id", authorID)
	log.Info("Executing query to set refresh token")

	query := `UPDATE authors SET refresh_token = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.DB.Exec(query, token, authorID)
	if err != nil {
		log.WithError(err).Error("Failed to execute set refresh token query")
	}
	return err
}

// RotateRefreshToken swaps the stored refresh token from `current` to `next`
// in a single compare-and-swap update. The author row is the serialization
// point for refresh rotation: of two concurrent attempts carrying the same
// stale token, only one can observe `current` and win. Returns false when
// the stored token no longer matches.
func (r *AuthorRepository) RotateRefreshToken(authorID int, current sql.NullString, next sql.NullString) (bool, error) {
	log := logger.Log.WithField("author_id", authorID)
	log.Info("Executing query to rotate refresh token")

	query := `UPDATE authors SET refresh_token = $1, updated_at = NOW()
		WHERE id = $2 AND refresh_token IS NOT DISTINCT FROM $3`
	result, err := r.DB.Exec(query, next, authorID, current)
	if err != nil {
		log.WithError(err).Error("Failed to execute rotate refresh token query")
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ClearRefreshToken unconditionally invalidates the author's session.
// Used on logout and as the replay defense when a stale token is presented.
func (r *AuthorRepository) ClearRefreshToken(authorID int) error {
	log := logger.Log.WithField("author_id", authorID)
	log.Info("Executing query to clear refresh token")

	query := `UPDATE authors SET refresh_token = NULL, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.Exec(query, authorID)
	if err != nil {
		log.WithError(err).Error("Failed to execute clear refresh token query")
	}
	return err
}

func (r *AuthorRepository) UpdateRole(authorID int, role string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"author_id": authorID,
		"role":      role,
	})
	log.Info("Executing query to update author role")

	query := `UPDATE authors SET role = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.Exec(query, role, authorID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update role query")
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

func (r *AuthorRepository) UpdatePassword(email, hashedPassword string) error {
	log := logger.Log.WithField("email", email)
	log.Info("Executing query to update author password")

	query := `UPDATE authors SET hashed_password = $1, updated_at = NOW() WHERE email = $2`
	_, err := r.DB.Exec(query, hashedPassword, email)
	if err != nil {
		log.WithError(err).Error("Failed to execute update password query")
	}
	return err
}
