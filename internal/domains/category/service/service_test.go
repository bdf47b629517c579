package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"borntoday/internal/domains/category/model"
	"borntoday/internal/shared/utils"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockRepository) Update(ctx context.Context, category *model.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
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

func TestCreate_SlugFromTitle(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SlugTaken", mock.Anything, "aktery", int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	category, err := NewService(repo).Create(context.Background(), model.CreateCategoryRequest{Title: "Актеры"})

	require.NoError(t, err)
	assert.Equal(t, "aktery", category.Slug)
}

func TestCreate_GivesUpWhenEveryInsertConflicts(t *testing.T) {
	repo := new(mockRepository)
	repo.On("SlugTaken", mock.Anything, mock.Anything, int64(0)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrDuplicateSlug)

	_, err := NewService(repo).Create(context.Background(), model.CreateCategoryRequest{Title: "Певцы"})

	assert.ErrorIs(t, err, utils.ErrSlugUnavailable)
	repo.AssertNumberOfCalls(t, "Create", utils.MaxSlugAttempts)
}

func TestUpdate_SlugIsNeverRecomputed(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByID", mock.Anything, int64(2)).Return(&model.Category{ID: 2, Title: "Певцы", Slug: "pevtsy"}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	category, err := NewService(repo).Update(context.Background(), 2, model.UpdateCategoryRequest{Title: "Музыканты"})

	require.NoError(t, err)
	assert.Equal(t, "Музыканты", category.Title)
	assert.Equal(t, "pevtsy", category.Slug)
}

func TestDelete_PropagatesNotFound(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Delete", mock.Anything, int64(4)).Return(model.ErrCategoryNotFound)

	err := NewService(repo).Delete(context.Background(), 4)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}
