package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"daily-focus/internal/model"
	"daily-focus/internal/repository"
)

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, name, colorHex string) (*model.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	category := model.Category{Name: name, ColorHex: colorHex}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, name, colorHex string) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	category.Name = name
	category.ColorHex = colorHex
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category only; its tasks keep a dangling
// reference and show up as "Uncategorized" in reports.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
