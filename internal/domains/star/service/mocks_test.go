package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
	"borntoday/internal/domains/star/model"
)

type mockRepository struct{ mock.Mock }

func (m *mockRepository) Create(ctx context.Context, star *model.Star, categoryIDs []int64) error {
	args := m.Called(ctx, star, categoryIDs)
	if args.Error(0) == nil {
		star.ID = 100
	}
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, star *model.Star, categoryIDs []int64) error {
	return m.Called(ctx, star, categoryIDs).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*model.Star, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetPublishedBySlug(ctx context.Context, slug string) (*model.Star, error) {
	args := m.Called(ctx, slug)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Star, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Star), args.Error(1)
}

func (m *mockRepository) CountPublished(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	return m.Called(ctx, id, published).Error(0)
}

func (m *mockRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) PhotosInUse(ctx context.Context, keys []string) (map[string]bool, error) {
	args := m.Called(ctx, keys)
	inUse, _ := args.Get(0).(map[string]bool)
	return inUse, args.Error(1)
}

type mockCountries struct{ mock.Mock }

func (m *mockCountries) GetByID(ctx context.Context, id int64) (*countrymodel.Country, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*countrymodel.Country); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCountries) GetBySlug(ctx context.Context, slug string) (*countrymodel.Country, error) {
	args := m.Called(ctx, slug)
	if c, ok := args.Get(0).(*countrymodel.Country); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCountries) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) GetByIDs(ctx context.Context, ids []int64) ([]categorymodel.Category, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]categorymodel.Category), args.Error(1)
}

func (m *mockCategories) GetBySlug(ctx context.Context, slug string) (*categorymodel.Category, error) {
	args := m.Called(ctx, slug)
	if c, ok := args.Get(0).(*categorymodel.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategories) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockPhotos) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockImages struct{ mock.Mock }

func (m *mockImages) ValidateImage(data []byte) error {
	return m.Called(data).Error(0)
}

func (m *mockImages) Normalize(data []byte) ([]byte, error) {
	args := m.Called(data)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImages) ContentType() string { return "image/jpeg" }

func (m *mockImages) Extension() string { return "jpg" }

type mockCleanupQueue struct{ mock.Mock }

func (m *mockCleanupQueue) EnqueuePhotoDelete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
