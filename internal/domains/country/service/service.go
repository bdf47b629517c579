package service

import (
	"context"
	"errors"
	"fmt"

	"borntoday/internal/domains/country/model"
	"borntoday/internal/domains/country/repository"
	"borntoday/internal/shared/utils"
	"borntoday/pkg/logger"
)

type countryService struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &countryService{repo: repo}
}

// Create: slug do admin nhập được giữ nguyên (trùng → ErrDuplicateSlug),
// nếu không thì sinh từ tên với hậu tố -1, -2, ... khi bị trùng
func (s *countryService) Create(ctx context.Context, req model.CreateCountryRequest) (*model.Country, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	country := &model.Country{Name: req.Name, Slug: req.Slug}

	if country.Slug != "" {
		if err := s.repo.Create(ctx, country); err != nil {
			return nil, err
		}
		return country, nil
	}

	taken := func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugTaken(ctx, slug, 0)
	}
	insert := func(ctx context.Context, slug string) error {
		country.Slug = slug
		return s.repo.Create(ctx, country)
	}
	isConflict := func(err error) bool { return errors.Is(err, model.ErrDuplicateSlug) }

	base := utils.BaseSlug(req.Name, model.SlugFallback)
	if _, err := utils.InsertWithUniqueSlug(ctx, base, taken, insert, isConflict); err != nil {
		return nil, fmt.Errorf("create country: %w", err)
	}

	logger.Info("Country created", map[string]interface{}{
		"id":   country.ID,
		"slug": country.Slug,
	})
	return country, nil
}

// Update chỉ đổi tên; slug giữ nguyên
func (s *countryService) Update(ctx context.Context, id int64, req model.UpdateCountryRequest) (*model.Country, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	country, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	country.Name = req.Name
	if err := s.repo.Update(ctx, country); err != nil {
		return nil, err
	}
	return country, nil
}

func (s *countryService) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *countryService) GetBySlug(ctx context.Context, slug string) (*model.Country, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *countryService) List(ctx context.Context) ([]model.Country, error) {
	return s.repo.List(ctx)
}

func (s *countryService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *countryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Country deleted (stars cascaded)", map[string]interface{}{"id": id})
	return nil
}
