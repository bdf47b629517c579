package service

import (
	"context"
	"time"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
	"borntoday/internal/domains/star/model"
)

type Service interface {
	// Public pages (chỉ ngôi sao đã publish)
	Home(ctx context.Context) (*model.HomePage, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Star, error)
	ListByCountry(ctx context.Context, countrySlug string) (*countrymodel.Country, []model.Star, error)
	ListByCategory(ctx context.Context, categorySlug string) (*categorymodel.Category, []model.Star, error)
	Sitemap(ctx context.Context) (*model.SitemapPage, error)
	SitemapLetter(ctx context.Context, letter string) (*model.SitemapPage, error)
	Stats(ctx context.Context) (*model.SiteStats, error)

	// Create từ form /add/, luôn publish. Lỗi form trả về model.FieldErrors
	Create(ctx context.Context, form model.StarForm, photo *model.PhotoUpload) (*model.Star, error)

	// Admin-level (không lọc is_published)
	GetByID(ctx context.Context, id int64) (*model.Star, error)
	ListAll(ctx context.Context) ([]model.Star, error)
	Update(ctx context.Context, id int64, form model.StarForm) (*model.Star, error)
	SetPublished(ctx context.Context, id int64, published bool) (*model.Star, error)
	Delete(ctx context.Context, id int64) error

	// Today: ngày hiện tại theo APP_TIMEZONE
	Today() time.Time
}

// CountryLookup: phần của country service mà star service cần
type CountryLookup interface {
	GetByID(ctx context.Context, id int64) (*countrymodel.Country, error)
	GetBySlug(ctx context.Context, slug string) (*countrymodel.Country, error)
	Count(ctx context.Context) (int, error)
}

// CategoryLookup: phần của category service mà star service cần
type CategoryLookup interface {
	GetByIDs(ctx context.Context, ids []int64) ([]categorymodel.Category, error)
	GetBySlug(ctx context.Context, slug string) (*categorymodel.Category, error)
	Count(ctx context.Context) (int, error)
}

// PhotoStorage: object storage cho ảnh (MinIO)
type PhotoStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// PhotoProcessor kiểm tra và chuẩn hóa ảnh trước khi upload
type PhotoProcessor interface {
	ValidateImage(data []byte) error
	Normalize(data []byte) ([]byte, error)
	ContentType() string
	Extension() string
}

// PhotoCleanupQueue nhận các key xóa inline thất bại để worker xóa lại
type PhotoCleanupQueue interface {
	EnqueuePhotoDelete(ctx context.Context, key string) error
}
