// repository/author_repository_test.go
package repository

import (
	"database/sql"
	"errors"
	"go-blog-api/logger"
	"go-blog-api/model"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func authorRows(id int, refreshToken sql.NullString) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "hashed_password", "role",
		"refresh_token", "is_active", "created_at", "updated_at",
	}).AddRow(id, "deniz", "deniz@example.com", "$2a$14$hash", "user",
		refreshToken, true, now, now)
}

func TestAuthorRepository_CreateAuthor(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthorRepository(db)

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		dbMock.ExpectQuery(`INSERT INTO authors`).
			WithArgs("deniz", "deniz@example.com", "$2a$14$hash").
			WillReturnRows(sqlmock.NewRows([]string{"id", "role", "is_active", "created_at", "updated_at"}).
				AddRow(7, "user", true, now, now))

		author := &model.Author{Username: "deniz", Email: "deniz@example.com", HashedPassword: "$2a$14$hash"}
		err := repo.CreateAuthor(author)

		assert.NoError(t, err)
		assert.Equal(t, 7, author.ID)
		assert.Equal(t, model.RoleUser, author.Role)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		dbMock.ExpectQuery(`INSERT INTO authors`).
			WithArgs("deniz", "deniz@example.com", "$2a$14$hash").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "authors_email_key"`))

		author := &model.Author{Username: "deniz", Email: "deniz@example.com", HashedPassword: "$2a$14$hash"}
		err := repo.CreateAuthor(author)

		assert.Error(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAuthorRepository_GetAuthorByEmail(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthorRepository(db)

	t.Run("found", func(t *testing.T) {
		stored := sql.NullString{String: "stored-token", Valid: true}
		dbMock.ExpectQuery(`SELECT (.+) FROM authors WHERE email = \$1`).
			WithArgs("deniz@example.com").
			WillReturnRows(authorRows(7, stored))

		author, err := repo.GetAuthorByEmail("deniz@example.com")

		assert.NoError(t, err)
		assert.Equal(t, 7, author.ID)
		assert.Equal(t, stored, author.RefreshToken)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		dbMock.ExpectQuery(`SELECT (.+) FROM authors WHERE email = \$1`).
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		author, err := repo.GetAuthorByEmail("ghost@example.com")

		assert.Nil(t, author)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAuthorRepository_RotateRefreshToken(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthorRepository(db)

	current := sql.NullString{String: "current-token", Valid: true}
	next := sql.NullString{String: "next-token", Valid: true}

	t.Run("stored token matches", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE authors SET refresh_token = \$1`).
			WithArgs(next, 7, current).
			WillReturnResult(sqlmock.NewResult(0, 1))

		swapped, err := repo.RotateRefreshToken(7, current, next)

		assert.NoError(t, err)
		assert.True(t, swapped)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("stored token already rotated away", func(t *testing.T) {
		// Another request rotated first, so the conditional update matches no row.
		dbMock.ExpectExec(`UPDATE authors SET refresh_token = \$1`).
			WithArgs(next, 7, current).
			WillReturnResult(sqlmock.NewResult(0, 0))

		swapped, err := repo.RotateRefreshToken(7, current, next)

		assert.NoError(t, err)
		assert.False(t, swapped)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE authors SET refresh_token = \$1`).
			WithArgs(next, 7, current).
			WillReturnError(errors.New("connection reset"))

		swapped, err := repo.RotateRefreshToken(7, current, next)

		assert.Error(t, err)
		assert.False(t, swapped)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAuthorRepository_SetAndClearRefreshToken(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthorRepository(db)

	t.Run("set overwrites unconditionally", func(t *testing.T) {
		token := sql.NullString{String: "fresh-token", Valid: true}
		dbMock.ExpectExec(`UPDATE authors SET refresh_token = \$1`).
			WithArgs(token, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetRefreshToken(7, token)

		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("clear nulls the stored token", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE authors SET refresh_token = NULL`).
			WithArgs(7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ClearRefreshToken(7)

		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAuthorRepository_UpdateRole(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAuthorRepository(db)

	t.Run("success", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE authors SET role = \$1`).
			WithArgs("moderator", 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateRole(7, "moderator")

		assert.NoError(t, err)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("unknown author", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE authors SET role = \$1`).
			WithArgs("moderator", 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRole(99, "moderator")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
