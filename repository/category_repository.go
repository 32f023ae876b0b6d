package repository

import (
	"database/sql"
	"go-blog-api/logger"
	"go-blog-api/model"
)

// ICategoryRepository defines the contract for category database operations.
type ICategoryRepository interface {
	CreateCategory(category *model.Category) error
	GetCategoryByID(id int) (*model.Category, error)
	GetCategoryByName(name string) (*model.Category, error)
	GetAllCategories() ([]*model.Category, error)
	UpdateCategory(category *model.Category) error
	DeleteCategory(id int) error
}

type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) CreateCategory(category *model.Category) error {
	log := logger.Log.WithField("name", category.Name)
	log.Info("Executing query to create a new category")

	query := `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id, created_at`
	err := r.DB.QueryRow(query, category.Name, category.Slug).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create category query")
		return err
	}
	return nil
}

func (r *CategoryRepository) GetCategoryByID(id int) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT id, name, slug, created_at FROM categories WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) GetCategoryByName(name string) (*model.Category, error) {
	category := &model.Category{}
	query := `SELECT id, name, slug, created_at FROM categories WHERE name = $1`
	err := r.DB.QueryRow(query, name).Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) GetAllCategories() ([]*model.Category, error) {
	query := `SELECT id, name, slug, created_at FROM categories ORDER BY name`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute query for all categories")
		return nil, err
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		category := &model.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan category row")
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) UpdateCategory(category *model.Category) error {
	log := logger.Log.WithField("category_id", category.ID)
	log.Info("Executing query to update a category")

	query := `UPDATE categories SET name = $1, slug = $2 WHERE id = $3`
	result, err := r.DB.Exec(query, category.Name, category.Slug, category.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update category query")
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

func (r *CategoryRepository) DeleteCategory(id int) error {
	log := logger.Log.WithField("category_id", id)
	log.Info("Executing query to delete a category")

	result, err := r.DB.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete category query")
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
