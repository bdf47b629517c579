package repository

import (
	"context"

	"borntoday/internal/domains/category/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	// GetByIDs bỏ qua id không tồn tại, caller tự so sánh số lượng
	GetByIDs(ctx context.Context, ids []int64) ([]model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int, error)
	// Delete chỉ gỡ liên kết star_categories, ngôi sao vẫn còn
	Delete(ctx context.Context, id int64) error
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
}
