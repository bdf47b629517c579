package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"borntoday/internal/domains/country/model"
	"borntoday/internal/infrastructure/database"
)

const slugConstraint = "countries_slug_key"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, country *model.Country) error {
	query := `INSERT INTO countries (name, slug) VALUES ($1, $2) RETURNING id`

	err := r.pool.QueryRow(ctx, query, country.Name, country.Slug).Scan(&country.ID)
	if err != nil {
		return mapError(err, "create country")
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, country *model.Country) error {
	query := `UPDATE countries SET name = $2, slug = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, country.ID, country.Name, country.Slug)
	if err != nil {
		return mapError(err, "update country")
	}
	if result.RowsAffected() == 0 {
		return model.ErrCountryNotFound
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Country, error) {
	query := `SELECT id, name, slug FROM countries WHERE id = $1`

	var c model.Country
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, mapError(err, "get country by id")
	}
	return &c, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Country, error) {
	query := `SELECT id, name, slug FROM countries WHERE slug = $1`

	var c model.Country
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		return nil, mapError(err, "get country by slug")
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Country, error) {
	query := `SELECT id, name, slug FROM countries ORDER BY name, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]model.Country, 0)
	for rows.Next() {
		var c model.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate countries: %w", err)
	}
	return countries, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM countries`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count countries: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCountryNotFound
	}
	return nil
}

func (r *postgresRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM countries WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check country slug: %w", err)
	}
	return exists, nil
}

// mapError chuyển lỗi pgx sang lỗi domain
func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrCountryNotFound
	case database.IsUniqueViolation(err, slugConstraint):
		return fmt.Errorf("%s: %w", op, model.ErrDuplicateSlug)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
