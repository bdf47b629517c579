package service

import (
	"context"

	"borntoday/internal/domains/country/model"
)

type Service interface {
	Create(ctx context.Context, req model.CreateCountryRequest) (*model.Country, error)
	Update(ctx context.Context, id int64, req model.UpdateCountryRequest) (*model.Country, error)
	GetByID(ctx context.Context, id int64) (*model.Country, error)
	GetBySlug(ctx context.Context, slug string) (*model.Country, error)
	List(ctx context.Context) ([]model.Country, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}
