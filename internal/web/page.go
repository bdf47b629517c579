package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
	"borntoday/internal/shared/flash"
)

// Page: context chung cho mọi template (sidebar + flash + dữ liệu riêng của page)
type Page struct {
	Title      string
	Countries  []countrymodel.Country
	Categories []categorymodel.Category
	Flashes    []flash.Message
	Today      time.Time
	Data       any
}

type CountryLister interface {
	List(ctx context.Context) ([]countrymodel.Country, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]categorymodel.Category, error)
}

type FlashPopper interface {
	Pop(c *gin.Context) []flash.Message
}

// PageBuilder gom dữ liệu sidebar và flash cho mọi trang HTML
type PageBuilder struct {
	countries  CountryLister
	categories CategoryLister
	flashes    FlashPopper
	today      func() time.Time
}

func NewPageBuilder(countries CountryLister, categories CategoryLister, flashes FlashPopper, today func() time.Time) *PageBuilder {
	return &PageBuilder{
		countries:  countries,
		categories: categories,
		flashes:    flashes,
		today:      today,
	}
}

// Build: lỗi load sidebar chỉ được log, trang vẫn render với menu rỗng
func (b *PageBuilder) Build(c *gin.Context, title string, data any) Page {
	ctx := c.Request.Context()
	page := Page{
		Title:      title,
		Countries:  []countrymodel.Country{},
		Categories: []categorymodel.Category{},
		Today:      b.today(),
		Data:       data,
	}

	if countries, err := b.countries.List(ctx); err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("sidebar: failed to load countries")
	} else {
		page.Countries = countries
	}

	if categories, err := b.categories.List(ctx); err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("sidebar: failed to load categories")
	} else {
		page.Categories = categories
	}

	if b.flashes != nil {
		page.Flashes = b.flashes.Pop(c)
	}
	return page
}

func (b *PageBuilder) Render(c *gin.Context, status int, name, title string, data any) {
	c.HTML(status, name, b.Build(c, title, data))
}

func (b *PageBuilder) NotFound(c *gin.Context) {
	b.Render(c, http.StatusNotFound, PageNotFound, "Страница не найдена", nil)
}

// ServerError log lỗi và render trang 500
func (b *PageBuilder) ServerError(c *gin.Context, err error) {
	log.Error().Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	_ = c.Error(err)
	c.HTML(http.StatusInternalServerError, PageServerError, Page{Title: "Ошибка сервера", Today: b.today()})
}

// ServerErrorPage dùng cho middleware.Recovery (không load sidebar, DB có thể đang lỗi)
func ServerErrorPage(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, PageServerError, Page{Title: "Ошибка сервера"})
}
