package service

import (
	"database/sql"
	"errors"
	"go-blog-api/model"
	"go-blog-api/repository"
)

// CategoryService handles category business logic. Categories are
// managed by admins and moderators only; the handlers enforce that.
type CategoryService struct {
	categoryRepo repository.ICategoryRepository
}

func NewCategoryService(categoryRepo repository.ICategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a category. Fails with ErrCategoryTaken when
// the name is already used.
func (s *CategoryService) CreateCategory(req model.CategoryRequest) (*model.Category, error) {
	if _, err := s.categoryRepo.GetCategoryByName(req.Name); err == nil {
		return nil, ErrCategoryTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	category := &model.Category{
		Name: req.Name,
		Slug: model.Slugify(req.Name),
	}
	if err := s.categoryRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetAllCategories() ([]*model.Category, error) {
	return s.categoryRepo.GetAllCategories()
}

func (s *CategoryService) GetCategoryByID(id int) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category and recomputes its slug.
func (s *CategoryService) UpdateCategory(id int, req model.CategoryRequest) (*model.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Slug = model.Slugify(req.Name)

	if err := s.categoryRepo.UpdateCategory(category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(id int) error {
	err := s.categoryRepo.DeleteCategory(id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCategoryNotFound
	}
	return err
}
