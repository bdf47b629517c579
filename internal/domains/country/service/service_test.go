package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"borntoday/internal/domains/country/model"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, country *model.Country) error {
	args := m.Called(ctx, country)
	if args.Error(0) == nil {
		country.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, country *model.Country) error {
	return m.Called(ctx, country).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Country); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*model.Country, error) {
	args := m.Called(ctx, slug)
	if c, ok := args.Get(0).(*model.Country); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func TestCreate_GeneratesTransliteratedSlug(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SlugTaken", mock.Anything, "rossija", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Country) bool {
		return c.Slug == "rossija" && c.Name == "Россия"
	})).Return(nil)

	svc := NewService(repo)
	country, err := svc.Create(context.Background(), model.CreateCountryRequest{Name: "Россия"})

	require.NoError(t, err)
	assert.Equal(t, "rossija", country.Slug)
	assert.Equal(t, int64(1), country.ID)
	repo.AssertExpectations(t)
}

func TestCreate_AppendsSuffixOnCollision(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SlugTaken", mock.Anything, "ssha", int64(0)).Return(true, nil)
	repo.On("SlugTaken", mock.Anything, "ssha-1", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	country, err := NewService(repo).Create(context.Background(), model.CreateCountryRequest{Name: "США"})

	require.NoError(t, err)
	assert.Equal(t, "ssha-1", country.Slug)
}

func TestCreate_RetriesWhenInsertLosesRace(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SlugTaken", mock.Anything, "italija", int64(0)).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrDuplicateSlug).Once()
	repo.On("SlugTaken", mock.Anything, "italija", int64(0)).Return(true, nil).Once()
	repo.On("SlugTaken", mock.Anything, "italija-1", int64(0)).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	country, err := NewService(repo).Create(context.Background(), model.CreateCountryRequest{Name: "Италия"})

	require.NoError(t, err)
	assert.Equal(t, "italija-1", country.Slug)
	repo.AssertExpectations(t)
}

func TestCreate_KeepsProvidedSlug(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Country) bool {
		return c.Slug == "russia"
	})).Return(nil)

	country, err := NewService(repo).Create(context.Background(), model.CreateCountryRequest{Name: "Россия", Slug: "russia"})

	require.NoError(t, err)
	assert.Equal(t, "russia", country.Slug)
	repo.AssertNotCalled(t, "SlugTaken", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_FallbackSlugForUntransliterableName(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SlugTaken", mock.Anything, model.SlugFallback, int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	country, err := NewService(repo).Create(context.Background(), model.CreateCountryRequest{Name: "中国"})

	require.NoError(t, err)
	assert.Equal(t, "country", country.Slug)
}

func TestCreate_ValidationError(t *testing.T) {
	repo := new(mockRepository)

	_, err := NewService(repo).Create(context.Background(), model.CreateCountryRequest{Name: "", Slug: "Bad Slug"})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "slug")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_KeepsExistingSlug(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, int64(7)).Return(&model.Country{ID: 7, Name: "Россия", Slug: "rossija"}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Country) bool {
		return c.Name == "Российская Федерация" && c.Slug == "rossija"
	})).Return(nil)

	country, err := NewService(repo).Update(context.Background(), 7, model.UpdateCountryRequest{Name: "Российская Федерация"})

	require.NoError(t, err)
	assert.Equal(t, "rossija", country.Slug)
	repo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, model.ErrCountryNotFound)

	_, err := NewService(repo).Update(context.Background(), 9, model.UpdateCountryRequest{Name: "X"})
	assert.ErrorIs(t, err, model.ErrCountryNotFound)
}
