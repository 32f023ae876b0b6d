// repository/profile_repository_test.go

package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProfileRepository_SetProfileAvatar(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewProfileRepository(db)

	t.Run("success", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE profiles SET avatar = \$1`).
			WithArgs("avatar_7_abc.png", 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetProfileAvatar(7, "avatar_7_abc.png"))
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("no profile", func(t *testing.T) {
		dbMock.ExpectExec(`UPDATE profiles SET avatar = \$1`).
			WithArgs("avatar_7_abc.png", 7).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetProfileAvatar(7, "avatar_7_abc.png"), sql.ErrNoRows)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
