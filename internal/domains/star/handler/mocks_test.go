package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
	"borntoday/internal/domains/star/model"
	"borntoday/internal/domains/star/service"
	"borntoday/internal/shared/flash"
	"borntoday/internal/web"
)

var testToday = time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)

type mockService struct{ mock.Mock }

var _ service.Service = (*mockService)(nil)

func (m *mockService) Home(ctx context.Context) (*model.HomePage, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).(*model.HomePage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Star, error) {
	args := m.Called(ctx, slug)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListByCountry(ctx context.Context, slug string) (*countrymodel.Country, []model.Star, error) {
	args := m.Called(ctx, slug)
	country, _ := args.Get(0).(*countrymodel.Country)
	stars, _ := args.Get(1).([]model.Star)
	return country, stars, args.Error(2)
}

func (m *mockService) ListByCategory(ctx context.Context, slug string) (*categorymodel.Category, []model.Star, error) {
	args := m.Called(ctx, slug)
	category, _ := args.Get(0).(*categorymodel.Category)
	stars, _ := args.Get(1).([]model.Star)
	return category, stars, args.Error(2)
}

func (m *mockService) Sitemap(ctx context.Context) (*model.SitemapPage, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).(*model.SitemapPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) SitemapLetter(ctx context.Context, letter string) (*model.SitemapPage, error) {
	args := m.Called(ctx, letter)
	if p, ok := args.Get(0).(*model.SitemapPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Stats(ctx context.Context) (*model.SiteStats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*model.SiteStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, form model.StarForm, photo *model.PhotoUpload) (*model.Star, error) {
	args := m.Called(ctx, form, photo)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*model.Star, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) ListAll(ctx context.Context) ([]model.Star, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Star), args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id int64, form model.StarForm) (*model.Star, error) {
	args := m.Called(ctx, id, form)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) SetPublished(ctx context.Context, id int64, published bool) (*model.Star, error) {
	args := m.Called(ctx, id, published)
	if s, ok := args.Get(0).(*model.Star); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) Today() time.Time { return testToday }

// ============================================================
// sidebar + flash fakes
// ============================================================

type sidebarCountries struct{}

func (sidebarCountries) List(context.Context) ([]countrymodel.Country, error) {
	return []countrymodel.Country{{ID: 1, Name: "Россия", Slug: "rossija"}}, nil
}

type sidebarCategories struct{}

func (sidebarCategories) List(context.Context) ([]categorymodel.Category, error) {
	return []categorymodel.Category{{ID: 2, Title: "Музыка", Slug: "muzyka"}, {ID: 3, Title: "Кино", Slug: "kino"}}, nil
}

type recordedFlash struct {
	Level flash.Level
	Text  string
}

type fakeFlasher struct{ added []recordedFlash }

func (f *fakeFlasher) Add(_ *gin.Context, level flash.Level, text string) {
	f.added = append(f.added, recordedFlash{Level: level, Text: text})
}

// ============================================================
// router
// ============================================================

type testEnv struct {
	router  *gin.Engine
	svc     *mockService
	flashes *fakeFlasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := web.NewRenderer(web.Funcs(func(key string) string { return "http://media.test/" + key }))
	require.NoError(t, err)

	svc := new(mockService)
	flashes := &fakeFlasher{}
	pages := web.NewPageBuilder(sidebarCountries{}, sidebarCategories{}, nil, func() time.Time { return testToday })
	h := NewHandler(svc, pages, flashes, 1<<20, "Дни рождения знаменитостей")
	admin := NewAdminHandler(svc)

	r := gin.New()
	r.HTMLRender = renderer
	r.GET("/", h.Index)
	r.GET("/about/", h.About)
	r.GET("/add/", h.AddForm)
	r.POST("/add/", h.Add)
	r.GET("/person/:slug/", h.Detail)
	r.GET("/country/:slug/", h.Country)
	r.GET("/industry/:slug/", h.Industry)
	r.GET("/star/:id/delete/", h.DeleteConfirm)
	r.POST("/star/:id/delete/", h.Delete)
	r.GET("/sitemap/", h.Sitemap)
	r.GET("/sitemap/:letter/", h.SitemapLetter)

	api := r.Group("/admin/api/stars")
	api.GET("", admin.List)
	api.GET("/:id", admin.Get)
	api.PUT("/:id", admin.Update)
	api.PATCH("/:id/publish", admin.SetPublished)

	return &testEnv{router: r, svc: svc, flashes: flashes}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sampleStar() *model.Star {
	return &model.Star{
		ID:          7,
		Name:        "Алла Пугачёва",
		Slug:        "alla-pugachjova",
		Country:     countrymodel.Country{ID: 1, Name: "Россия", Slug: "rossija"},
		Categories:  []categorymodel.Category{{ID: 2, Title: "Музыка", Slug: "muzyka"}},
		BirthDate:   time.Date(1949, time.April, 15, 0, 0, 0, 0, time.UTC),
		Content:     "Певица.",
		IsPublished: true,
	}
}
