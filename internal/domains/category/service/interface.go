package service

import (
	"context"

	"borntoday/internal/domains/category/model"
)

type Service interface {
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}
