package service

import (
	"context"
	"errors"
	"fmt"

	"borntoday/internal/domains/category/model"
	"borntoday/internal/domains/category/repository"
	"borntoday/internal/shared/utils"
	"borntoday/pkg/logger"
)

type categoryService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := &model.Category{Title: req.Title, Slug: req.Slug}

	// Slug nhập tay: giữ nguyên
	if category.Slug != "" {
		if err := s.repo.Create(ctx, category); err != nil {
			return nil, err
		}
		return category, nil
	}

	_, err := utils.InsertWithUniqueSlug(ctx,
		utils.BaseSlug(req.Title, model.SlugFallback),
		func(ctx context.Context, slug string) (bool, error) {
			return s.repo.SlugTaken(ctx, slug, 0)
		},
		func(ctx context.Context, slug string) error {
			category.Slug = slug
			return s.repo.Create(ctx, category)
		},
		func(err error) bool { return errors.Is(err, model.ErrDuplicateSlug) },
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	logger.Info("Category created", map[string]interface{}{
		"id":   category.ID,
		"slug": category.Slug,
	})
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Title = req.Title
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) GetByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
