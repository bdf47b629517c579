package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
	"borntoday/internal/domains/star/model"
	"borntoday/internal/domains/star/repository"
	"borntoday/internal/infrastructure/storage"
	"borntoday/internal/shared/utils"
	"borntoday/pkg/logger"
)

const msgInvalidPhoto = "Загрузите правильное изображение в формате JPEG или PNG размером не более 5 МБ."

type starService struct {
	repo       repository.Repository
	countries  CountryLookup
	categories CategoryLookup
	photos     PhotoStorage
	images     PhotoProcessor
	cleanup    PhotoCleanupQueue
	loc        *time.Location
	now        func() time.Time
}

func NewService(
	repo repository.Repository,
	countries CountryLookup,
	categories CategoryLookup,
	photos PhotoStorage,
	images PhotoProcessor,
	cleanup PhotoCleanupQueue,
	loc *time.Location,
) Service {
	s := newStarService(repo, countries, categories, photos, images, loc)
	s.cleanup = cleanup
	return s
}

func newStarService(
	repo repository.Repository,
	countries CountryLookup,
	categories CategoryLookup,
	photos PhotoStorage,
	images PhotoProcessor,
	loc *time.Location,
) *starService {
	if loc == nil {
		loc = time.UTC
	}
	return &starService{
		repo:       repo,
		countries:  countries,
		categories: categories,
		photos:     photos,
		images:     images,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *starService) Today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

// ============================================================
// PUBLIC PAGES
// ============================================================

func (s *starService) Home(ctx context.Context) (*model.HomePage, error) {
	stars, err := s.repo.List(ctx, model.ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	today := s.Today()
	return &model.HomePage{
		Stars:     stars,
		Birthdays: model.PartitionByBirthday(stars, today),
		Today:     today,
	}, nil
}

func (s *starService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Star, error) {
	return s.repo.GetPublishedBySlug(ctx, slug)
}

func (s *starService) ListByCountry(ctx context.Context, countrySlug string) (*countrymodel.Country, []model.Star, error) {
	country, err := s.countries.GetBySlug(ctx, countrySlug)
	if err != nil {
		return nil, nil, err
	}

	stars, err := s.repo.List(ctx, model.ListFilter{PublishedOnly: true, CountryID: country.ID})
	if err != nil {
		return nil, nil, err
	}
	return country, stars, nil
}

func (s *starService) ListByCategory(ctx context.Context, categorySlug string) (*categorymodel.Category, []model.Star, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, err
	}

	stars, err := s.repo.List(ctx, model.ListFilter{PublishedOnly: true, CategoryID: category.ID})
	if err != nil {
		return nil, nil, err
	}
	return category, stars, nil
}

func (s *starService) Sitemap(ctx context.Context) (*model.SitemapPage, error) {
	stars, err := s.repo.List(ctx, model.ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	model.SortByName(stars)
	active := model.ActiveLetters(stars, model.RussianAlphabet)

	return &model.SitemapPage{
		Stars:   stars,
		Letters: model.LetterIndex(model.RussianAlphabet, active, ""),
	}, nil
}

func (s *starService) SitemapLetter(ctx context.Context, letter string) (*model.SitemapPage, error) {
	stars, err := s.repo.List(ctx, model.ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}

	current := strings.ToUpper(strings.TrimSpace(letter))
	active := model.ActiveLetters(stars, model.RussianAlphabet)

	return &model.SitemapPage{
		Stars:         model.StarsStartingWith(stars, current),
		Letters:       model.LetterIndex(model.RussianAlphabet, active, current),
		CurrentLetter: current,
	}, nil
}

func (s *starService) Stats(ctx context.Context) (*model.SiteStats, error) {
	stars, err := s.repo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	countries, err := s.countries.Count(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &model.SiteStats{Stars: stars, Countries: countries, Categories: categories}, nil
}

// ============================================================
// CREATE
// ============================================================

// Create: validate → resolve country/categories → upload ảnh → insert (slug unique).
// Insert lỗi thì ảnh đã upload bị xóa, không để lại object mồ côi.
func (s *starService) Create(ctx context.Context, form model.StarForm, photo *model.PhotoUpload) (*model.Star, error) {
	form.Normalize()

	star, categoryIDs, err := s.buildStar(ctx, form)
	if err != nil {
		return nil, err
	}
	star.IsPublished = true

	var photoData []byte
	if photo != nil && len(photo.Data) > 0 {
		if err := s.images.ValidateImage(photo.Data); err != nil {
			return nil, model.FieldErrors{"photo": msgInvalidPhoto}
		}
		photoData, err = s.images.Normalize(photo.Data)
		if err != nil {
			return nil, model.FieldErrors{"photo": msgInvalidPhoto}
		}
	}

	if photoData != nil {
		key := storage.PhotoKey(s.now().In(s.loc), s.images.Extension())
		if _, err := s.photos.Upload(ctx, key, photoData, s.images.ContentType()); err != nil {
			return nil, fmt.Errorf("upload star photo: %w", err)
		}
		star.Photo = key
	}

	_, err = utils.InsertWithUniqueSlug(ctx,
		utils.BaseSlug(star.Name, model.SlugFallback),
		func(ctx context.Context, slug string) (bool, error) {
			return s.repo.SlugTaken(ctx, slug, 0)
		},
		func(ctx context.Context, slug string) error {
			star.Slug = slug
			return s.repo.Create(ctx, star, categoryIDs)
		},
		func(err error) bool { return errors.Is(err, model.ErrDuplicateSlug) },
	)
	if err != nil {
		s.removePhoto(star.Photo)
		return nil, fmt.Errorf("create star: %w", err)
	}

	logger.Info("Star created", map[string]interface{}{
		"id":    star.ID,
		"slug":  star.Slug,
		"photo": star.Photo,
	})
	return star, nil
}

// buildStar validate form và resolve country + categories
func (s *starService) buildStar(ctx context.Context, form model.StarForm) (*model.Star, []int64, error) {
	if err := form.Validate(s.Today()); err != nil {
		return nil, nil, err
	}

	birth, err := form.ParsedBirthDate()
	if err != nil {
		return nil, nil, model.FieldErrors{"birth_date": err.Error()}
	}

	country, err := s.countries.GetByID(ctx, form.CountryID)
	if err != nil {
		if errors.Is(err, countrymodel.ErrCountryNotFound) {
			return nil, nil, model.FieldErrors{"country": model.MsgUnknownChoice}
		}
		return nil, nil, err
	}

	categoryIDs := uniqueIDs(form.CategoryIDs)
	categories, err := s.categories.GetByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(categories) != len(categoryIDs) {
		return nil, nil, model.FieldErrors{"categories": model.MsgUnknownChoice}
	}

	return &model.Star{
		Name:       form.Name,
		Country:    *country,
		Categories: categories,
		BirthDate:  birth,
		Content:    form.Content,
	}, categoryIDs, nil
}

// ============================================================
// ADMIN
// ============================================================

func (s *starService) GetByID(ctx context.Context, id int64) (*model.Star, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *starService) ListAll(ctx context.Context) ([]model.Star, error) {
	return s.repo.List(ctx, model.ListFilter{})
}

// Update ghi đè nội dung, slug và trạng thái publish giữ nguyên
func (s *starService) Update(ctx context.Context, id int64, form model.StarForm) (*model.Star, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	form.Normalize()
	updated, categoryIDs, err := s.buildStar(ctx, form)
	if err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.Slug = existing.Slug
	updated.Photo = existing.Photo
	updated.IsPublished = existing.IsPublished
	updated.TimeCreate = existing.TimeCreate

	if err := s.repo.Update(ctx, updated, categoryIDs); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *starService) SetPublished(ctx context.Context, id int64, published bool) (*model.Star, error) {
	if err := s.repo.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Delete xóa vĩnh viễn (không soft delete), ảnh được dọn best-effort
func (s *starService) Delete(ctx context.Context, id int64) error {
	star, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.removePhoto(star.Photo)
	logger.Info("Star deleted", map[string]interface{}{"id": id, "slug": star.Slug})
	return nil
}

// removePhoto chạy với context riêng để vẫn dọn được khi request đã bị cancel
func (s *starService) removePhoto(key string) {
	if key == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.photos.Delete(ctx, key)
	if err == nil {
		return
	}
	log.Warn().Err(err).Str("key", key).Msg("[STAR] Failed to remove photo object")

	if s.cleanup == nil {
		return
	}
	if err := s.cleanup.EnqueuePhotoDelete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[STAR] Failed to enqueue photo cleanup")
	}
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
