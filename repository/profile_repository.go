package repository

import (
	"database/sql"
	"go-blog-api/logger"
	"go-blog-api/model"
)

// IProfileRepository defines the contract for author profile database operations.
type IProfileRepository interface {
	CreateProfile(profile *model.Profile) error
	GetProfileByAuthorID(authorID int) (*model.Profile, error)
	UpdateProfile(profile *model.Profile) error
	SetProfileAvatar(authorID int, filename string) error
	DeleteProfile(authorID int) error
}

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) CreateProfile(profile *model.Profile) error {
	log := logger.Log.WithField("author_id", profile.AuthorID)
	log.Info("Executing query to create an author profile")

	query := `INSERT INTO profiles (author_id, first_name, last_name, phone_number)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query, profile.AuthorID, profile.FirstName, profile.LastName, profile.PhoneNumber).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create profile query")
		return err
	}
	return nil
}

func (r *ProfileRepository) GetProfileByAuthorID(authorID int) (*model.Profile, error) {
	profile := &model.Profile{}
	query := `SELECT id, author_id, first_name, last_name, phone_number, avatar, created_at, updated_at
		FROM profiles WHERE author_id = $1`
	err := r.DB.QueryRow(query, authorID).Scan(
		&profile.ID, &profile.AuthorID, &profile.FirstName, &profile.LastName,
		&profile.PhoneNumber, &profile.Avatar, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *ProfileRepository) UpdateProfile(profile *model.Profile) error {
	log := logger.Log.WithField("author_id", profile.AuthorID)
	log.Info("Executing query to update an author profile")

	query := `UPDATE profiles SET first_name = $1, last_name = $2, phone_number = $3, updated_at = NOW()
		WHERE author_id = $4 RETURNING updated_at`
	err := r.DB.QueryRow(query, profile.FirstName, profile.LastName, profile.PhoneNumber, profile.AuthorID).
		Scan(&profile.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute update profile query")
		return err
	}
	return nil
}

func (r *ProfileRepository) SetProfileAvatar(authorID int, filename string) error {
	log := logger.Log.WithField("author_id", authorID)
	log.Info("Executing query to set a profile avatar")

	query := `UPDATE profiles SET avatar = $1, updated_at = NOW() WHERE author_id = $2`
	result, err := r.DB.Exec(query, filename, authorID)
	if err != nil {
		log.WithError(err).Error("Failed to execute set avatar query")
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

func (r *ProfileRepository) DeleteProfile(authorID int) error {
	log := logger.Log.WithField("author_id", authorID)
	log.Info("Executing query to delete an author profile")

	result, err := r.DB.Exec(`DELETE FROM profiles WHERE author_id = $1`, authorID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete profile query")
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
