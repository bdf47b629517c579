package handler

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
	"borntoday/internal/domains/star/model"
	"borntoday/internal/domains/star/service"
	"borntoday/internal/shared/flash"
	"borntoday/internal/shared/utils"
	"borntoday/internal/web"
)

const (
	// multipart overhead ngoài file ảnh (các field text của form)
	formOverhead = 1 << 20

	msgPhotoTooLarge = "Размер файла превышает допустимый."
	msgBadForm       = "Не удалось обработать форму, попробуйте еще раз."
)

// Pages: phần của web.PageBuilder mà handler cần
type Pages interface {
	Render(c *gin.Context, status int, name, title string, data any)
	NotFound(c *gin.Context)
	ServerError(c *gin.Context, err error)
}

type Flasher interface {
	Add(c *gin.Context, level flash.Level, text string)
}

// Handler: các trang HTML public của site
type Handler struct {
	svc         service.Service
	pages       Pages
	flashes     Flasher
	maxUpload   int64
	description string
}

func NewHandler(svc service.Service, pages Pages, flashes Flasher, maxUpload int64, description string) *Handler {
	return &Handler{
		svc:         svc,
		pages:       pages,
		flashes:     flashes,
		maxUpload:   maxUpload,
		description: description,
	}
}

type aboutView struct {
	Description string
	Stats       model.SiteStats
}

type addStarView struct {
	Form       model.StarForm
	Errors     model.FieldErrors
	MaxPhotoMB int64
}

type listingView struct {
	Name  string
	Stars []model.Star
}

// ============================================================
// READ PAGES
// ============================================================

// Index GET /
func (h *Handler) Index(c *gin.Context) {
	home, err := h.svc.Home(c.Request.Context())
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageIndex, "Главная страница", home)
}

// Detail GET /person/:slug/
func (h *Handler) Detail(c *gin.Context) {
	star, err := h.svc.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageDetail, star.Name, star)
}

// About GET /about/
func (h *Handler) About(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageAbout, "О сайте", aboutView{
		Description: h.description,
		Stats:       *stats,
	})
}

// Country GET /country/:slug/
func (h *Handler) Country(c *gin.Context) {
	country, stars, err := h.svc.ListByCountry(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageCountry, "Страна: "+country.Name, listingView{
		Name:  country.Name,
		Stars: stars,
	})
}

// Industry GET /industry/:slug/
func (h *Handler) Industry(c *gin.Context) {
	category, stars, err := h.svc.ListByCategory(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageIndustry, "Отрасль: "+category.Title, listingView{
		Name:  category.Title,
		Stars: stars,
	})
}

// Sitemap GET /sitemap/
func (h *Handler) Sitemap(c *gin.Context) {
	page, err := h.svc.Sitemap(c.Request.Context())
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageSitemap, "Алфавитный указатель", page)
}

// SitemapLetter GET /sitemap/:letter/ (chỉ nhận đúng một ký tự)
func (h *Handler) SitemapLetter(c *gin.Context) {
	letter := strings.TrimSpace(c.Param("letter"))
	if utf8.RuneCountInString(letter) != 1 {
		h.pages.NotFound(c)
		return
	}

	page, err := h.svc.SitemapLetter(c.Request.Context(), letter)
	if err != nil {
		h.pages.ServerError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageSitemapLetter, "Знаменитости на букву "+page.CurrentLetter, page)
}

// ============================================================
// ADD
// ============================================================

// AddForm GET /add/
func (h *Handler) AddForm(c *gin.Context) {
	h.renderAddForm(c, model.StarForm{}, nil)
}

// Add POST /add/
// Form lỗi → render lại form (200) với message từng field.
// Thành công → flash + redirect 303 tới trang của ngôi sao.
func (h *Handler) Add(c *gin.Context) {
	form, photo, parseErrs := h.parseAddForm(c)
	if len(parseErrs) > 0 {
		errs := model.FieldErrors{}
		if fe, ok := model.AsFieldErrors(form.Validate(h.svc.Today())); ok {
			maps.Copy(errs, fe)
		}
		maps.Copy(errs, parseErrs)
		h.renderAddForm(c, form, errs)
		return
	}

	star, err := h.svc.Create(c.Request.Context(), form, photo)
	if err != nil {
		if fe, ok := model.AsFieldErrors(err); ok {
			h.renderAddForm(c, form, fe)
			return
		}
		h.pages.ServerError(c, err)
		return
	}

	h.flashes.Add(c, flash.LevelSuccess, fmt.Sprintf("Знаменитость \"%s\" успешно добавлена!", star.Name))
	c.Redirect(http.StatusSeeOther, "/person/"+star.Slug+"/")
}

func (h *Handler) renderAddForm(c *gin.Context, form model.StarForm, errs model.FieldErrors) {
	h.pages.Render(c, http.StatusOK, web.PageAddStar, "Добавление знаменитости", addStarView{
		Form:       form,
		Errors:     errs,
		MaxPhotoMB: h.maxUpload >> 20,
	})
}

// parseAddForm đọc multipart form; lỗi parse từng field trả về dạng FieldErrors
func (h *Handler) parseAddForm(c *gin.Context) (model.StarForm, *model.PhotoUpload, model.FieldErrors) {
	errs := model.FieldErrors{}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)

	if err := c.Request.ParseMultipartForm(h.maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errs["photo"] = msgPhotoTooLarge
		} else {
			errs["__all__"] = msgBadForm
		}
		return model.StarForm{}, nil, errs
	}

	form := model.StarForm{
		Name:      c.PostForm("name"),
		BirthDate: c.PostForm("birth_date"),
		Content:   c.PostForm("content"),
	}

	if raw := strings.TrimSpace(c.PostForm("country")); raw != "" {
		id, err := utils.ParseInt64ID(raw)
		if err != nil {
			errs["country"] = model.MsgUnknownChoice
		}
		form.CountryID = id
	}

	if raw := c.PostFormArray("categories"); len(raw) > 0 {
		ids, err := utils.ParseInt64IDs(raw)
		if err != nil {
			errs["categories"] = model.MsgUnknownChoice
		}
		form.CategoryIDs = ids
	}

	photo, err := h.readPhoto(c)
	if err != nil {
		errs["photo"] = err.Error()
	}
	return form, photo, errs
}

// readPhoto: field "photo" không bắt buộc, file rỗng coi như không gửi
func (h *Handler) readPhoto(c *gin.Context) (*model.PhotoUpload, error) {
	fh, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New(msgBadForm)
	}
	if fh.Size == 0 {
		return nil, nil
	}
	if fh.Size > h.maxUpload {
		return nil, errors.New(msgPhotoTooLarge)
	}

	data, err := readAll(fh, h.maxUpload)
	if err != nil {
		log.Warn().Err(err).Str("request_id", c.GetString("request_id")).Msg("[STAR] Failed to read uploaded photo")
		return nil, errors.New(msgBadForm)
	}
	return &model.PhotoUpload{Filename: fh.Filename, Data: data}, nil
}

func readAll(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}

// ============================================================
// DELETE
// ============================================================

// DeleteConfirm GET /star/:id/delete/
func (h *Handler) DeleteConfirm(c *gin.Context) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		h.pages.NotFound(c)
		return
	}

	star, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handlePageError(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, web.PageConfirmDelete, "Удаление: "+star.Name, star)
}

// Delete POST /star/:id/delete/
func (h *Handler) Delete(c *gin.Context) {
	id, err := utils.ParseInt64ID(c.Param("id"))
	if err != nil {
		h.pages.NotFound(c)
		return
	}

	star, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handlePageError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.handlePageError(c, err)
		return
	}

	h.flashes.Add(c, flash.LevelInfo, fmt.Sprintf("Знаменитость \"%s\" удалена.", star.Name))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) handlePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrStarNotFound),
		errors.Is(err, countrymodel.ErrCountryNotFound),
		errors.Is(err, categorymodel.ErrCategoryNotFound):
		h.pages.NotFound(c)
	default:
		h.pages.ServerError(c, err)
	}
}
