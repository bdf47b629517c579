package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"borntoday/internal/domains/category/model"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, req)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.Category, error) {
	args := m.Called(ctx, id, req)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	args := m.Called(ctx, slug)
	if c, ok := args.Get(0).(*model.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *mockService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/admin/api/categories", h.Create)
	r.PUT("/admin/api/categories/:id", h.Update)
	r.DELETE("/admin/api/categories/:id", h.Delete)
	return r
}

func TestCategoryAdminAPI(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, model.CreateCategoryRequest{Title: "Певцы"}).
		Return(&model.Category{ID: 1, Title: "Певцы", Slug: "pevtsy"}, nil)
	svc.On("Update", mock.Anything, int64(1), model.UpdateCategoryRequest{Title: "Певцы и певицы"}).
		Return(&model.Category{ID: 1, Title: "Певцы и певицы", Slug: "pevtsy"}, nil)
	svc.On("Update", mock.Anything, int64(2), mock.Anything).Return(nil, model.ErrCategoryNotFound)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)

	r := newRouter(svc)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		contains string
	}{
		{"create", http.MethodPost, "/admin/api/categories", `{"title":"Певцы"}`, http.StatusCreated, `"slug":"pevtsy"`},
		{"bad json", http.MethodPost, "/admin/api/categories", `{`, http.StatusBadRequest, "BAD_REQUEST"},
		{"update keeps slug", http.MethodPut, "/admin/api/categories/1", `{"title":"Певцы и певицы"}`, http.StatusOK, `"slug":"pevtsy"`},
		{"update missing", http.MethodPut, "/admin/api/categories/2", `{"title":"X"}`, http.StatusNotFound, model.ErrCodeCategoryNotFound},
		{"delete", http.MethodDelete, "/admin/api/categories/1", "", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}
