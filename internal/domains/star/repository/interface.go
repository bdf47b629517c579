package repository

import (
	"context"

	"borntoday/internal/domains/star/model"
)

type Repository interface {
	// Create insert star và star_categories trong cùng transaction
	Create(ctx context.Context, star *model.Star, categoryIDs []int64) error
	// Update ghi đè field và thay toàn bộ liên kết categories
	Update(ctx context.Context, star *model.Star, categoryIDs []int64) error
	// GetByID: admin lookup, không lọc is_published
	GetByID(ctx context.Context, id int64) (*model.Star, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Star, error)
	// List sắp xếp theo time_create DESC
	List(ctx context.Context, filter model.ListFilter) ([]model.Star, error)
	CountPublished(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
	SetPublished(ctx context.Context, id int64, published bool) error
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	// PhotosInUse trả về tập các key (trong keys) đang được star nào đó tham chiếu
	PhotosInUse(ctx context.Context, keys []string) (map[string]bool, error)
}
