package repository

import (
	"context"

	"borntoday/internal/domains/country/model"
)

type Repository interface {
	// Create insert và gán ID. Trùng slug → model.ErrDuplicateSlug
	Create(ctx context.Context, country *model.Country) error
	Update(ctx context.Context, country *model.Country) error
	GetByID(ctx context.Context, id int64) (*model.Country, error)
	GetBySlug(ctx context.Context, slug string) (*model.Country, error)
	// List sắp xếp theo tên
	List(ctx context.Context) ([]model.Country, error)
	Count(ctx context.Context) (int, error)
	// Delete cascade xóa luôn các ngôi sao thuộc quốc gia
	Delete(ctx context.Context, id int64) error
	// SlugTaken: slug đã thuộc country khác (excludeID = 0 khi tạo mới)
	SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
}
