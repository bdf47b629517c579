package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"borntoday/internal/domains/category/model"
	"borntoday/internal/infrastructure/database"
)

const slugConstraint = "categories_slug_key"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (title, slug) VALUES ($1, $2) RETURNING id`

	if err := r.pool.QueryRow(ctx, query, category.Title, category.Slug).Scan(&category.ID); err != nil {
		return mapError(err, "create category")
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET title = $2, slug = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, category.ID, category.Title, category.Slug)
	if err != nil {
		return mapError(err, "update category")
	}
	if result.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT id, title, slug FROM categories WHERE id = $1`

	var c model.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Title, &c.Slug); err != nil {
		return nil, mapError(err, "get category by id")
	}
	return &c, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	if len(ids) == 0 {
		return []model.Category{}, nil
	}

	query := `SELECT id, title, slug FROM categories WHERE id = ANY($1) ORDER BY title, id`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get categories by ids: %w", err)
	}
	return collect(rows)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := `SELECT id, title, slug FROM categories WHERE slug = $1`

	var c model.Category
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Title, &c.Slug); err != nil {
		return nil, mapError(err, "get category by slug")
	}
	return &c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, slug FROM categories ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return collect(rows)
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check category slug: %w", err)
	}
	return exists, nil
}

func collect(rows pgx.Rows) ([]model.Category, error) {
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Category, error) {
		var c model.Category
		err := row.Scan(&c.ID, &c.Title, &c.Slug)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}

func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrCategoryNotFound
	case database.IsUniqueViolation(err, slugConstraint):
		return fmt.Errorf("%s: %w", op, model.ErrDuplicateSlug)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
