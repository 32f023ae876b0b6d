package repository

import (
	"database/sql"
	"errors"
	"go-blog-api/logger"
	"go-blog-api/model"
)

// ITagRepository defines the contract for tag database operations.
type ITagRepository interface {
	GetAllTags() ([]*model.Tag, error)
	GetTagByID(id int) (*model.Tag, error)
	UpdateTag(id int, name string) (*model.Tag, error)
	DeleteTag(id int) error
}

type TagRepository struct {
	DB *sql.DB
}

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{DB: db}
}

func (r *TagRepository) GetAllTags() ([]*model.Tag, error) {
	rows, err := r.DB.Query(`SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all tags")
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

func (r *TagRepository) GetTagByID(id int) (*model.Tag, error) {
	tag := &model.Tag{}
	err := r.DB.QueryRow(`SELECT id, name FROM tags WHERE id = $1`, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *TagRepository) UpdateTag(id int, name string) (*model.Tag, error) {
	log := logger.Log.WithField("tag_id", id)
	log.Info("Executing query to update a tag")

	tag := &model.Tag{}
	query := `UPDATE tags SET name = $1 WHERE id = $2 RETURNING id, name`
	err := r.DB.QueryRow(query, name, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.WithError(err).Error("Failed to execute update tag query")
		}
		return nil, err
	}
	return tag, nil
}

func (r *TagRepository) DeleteTag(id int) error {
	log := logger.Log.WithField("tag_id", id)
	log.Info("Executing query to delete a tag")

	result, err := r.DB.Exec(`DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete tag query")
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
