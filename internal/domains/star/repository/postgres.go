package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	categorymodel "borntoday/internal/domains/category/model"
	"borntoday/internal/domains/star/model"
	"borntoday/internal/infrastructure/database"
	pkgdb "borntoday/pkg/database"
)

const (
	slugConstraint            = "stars_slug_key"
	countryConstraint         = "stars_country_id_fkey"
	categoryLinkConstraint    = "star_categories_category_id_fkey"
	starColumnsWithCountry    = "s.id, s.name, s.slug, s.birth_date, s.content, s.photo, s.is_published, s.time_create, s.time_update, c.id, c.name, c.slug"
	starFromJoinCountryClause = "stars s JOIN countries c ON c.id = s.country_id"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ============================================================
// WRITE
// ============================================================

func (r *postgresRepository) Create(ctx context.Context, star *model.Star, categoryIDs []int64) error {
	err := pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO stars (name, slug, country_id, birth_date, content, photo, is_published)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, time_create, time_update`

		err := tx.QueryRow(ctx, query,
			star.Name, star.Slug, star.Country.ID, star.BirthDate, star.Content,
			nullableString(star.Photo), star.IsPublished,
		).Scan(&star.ID, &star.TimeCreate, &star.TimeUpdate)
		if err != nil {
			return err
		}

		return replaceCategories(ctx, tx, star.ID, categoryIDs)
	})
	if err != nil {
		return mapError(err, "create star")
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, star *model.Star, categoryIDs []int64) error {
	err := pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE stars
			SET name = $2, slug = $3, country_id = $4, birth_date = $5, content = $6,
			    photo = $7, is_published = $8, time_update = now()
			WHERE id = $1
			RETURNING time_update`

		err := tx.QueryRow(ctx, query,
			star.ID, star.Name, star.Slug, star.Country.ID, star.BirthDate, star.Content,
			nullableString(star.Photo), star.IsPublished,
		).Scan(&star.TimeUpdate)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM star_categories WHERE star_id = $1`, star.ID); err != nil {
			return err
		}
		return replaceCategories(ctx, tx, star.ID, categoryIDs)
	})
	if err != nil {
		return mapError(err, "update star")
	}
	return nil
}

// replaceCategories insert liên kết star_categories (bảng đã được xóa trước nếu là update)
func replaceCategories(ctx context.Context, tx pgx.Tx, starID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO star_categories (star_id, category_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, starID, categoryIDs)
	return err
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM stars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete star: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrStarNotFound
	}
	return nil
}

func (r *postgresRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE stars SET is_published = $2, time_update = now() WHERE id = $1`, id, published)
	if err != nil {
		return fmt.Errorf("set star published: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrStarNotFound
	}
	return nil
}

// ============================================================
// READ
// ============================================================

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Star, error) {
	return r.getOne(ctx, sq.Eq{"s.id": id})
}

func (r *postgresRepository) GetPublishedBySlug(ctx context.Context, slug string) (*model.Star, error) {
	return r.getOne(ctx, sq.Eq{"s.slug": slug, "s.is_published": true})
}

func (r *postgresRepository) getOne(ctx context.Context, where sq.Sqlizer) (*model.Star, error) {
	query, args, err := psql.Select(starColumnsWithCountry).From(starFromJoinCountryClause).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build star query: %w", err)
	}

	star, err := scanStar(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "get star")
	}

	stars := []model.Star{*star}
	if err := r.attachCategories(ctx, stars); err != nil {
		return nil, err
	}
	return &stars[0], nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Star, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stars: %w", err)
	}
	defer rows.Close()

	stars := make([]model.Star, 0)
	for rows.Next() {
		star, err := scanStar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan star: %w", err)
		}
		stars = append(stars, *star)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stars: %w", err)
	}

	if err := r.attachCategories(ctx, stars); err != nil {
		return nil, err
	}
	return stars, nil
}

// buildListQuery: listing mặc định theo time_create DESC (id DESC để ổn định)
func buildListQuery(filter model.ListFilter) (string, []interface{}, error) {
	q := psql.Select(starColumnsWithCountry).From(starFromJoinCountryClause)

	if filter.PublishedOnly {
		q = q.Where(sq.Eq{"s.is_published": true})
	}
	if filter.CountryID != 0 {
		q = q.Where(sq.Eq{"s.country_id": filter.CountryID})
	}
	if filter.CategoryID != 0 {
		q = q.Where("EXISTS (SELECT 1 FROM star_categories sc WHERE sc.star_id = s.id AND sc.category_id = ?)", filter.CategoryID)
	}

	return q.OrderBy("s.time_create DESC", "s.id DESC").ToSql()
}

func (r *postgresRepository) CountPublished(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stars WHERE is_published`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count published stars: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stars WHERE slug = $1 AND id <> $2)`, slug, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check star slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) PhotosInUse(ctx context.Context, keys []string) (map[string]bool, error) {
	inUse := make(map[string]bool, len(keys))
	if len(keys) == 0 {
		return inUse, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT photo FROM stars WHERE photo = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("check photos in use: %w", err)
	}

	used, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan photos in use: %w", err)
	}
	for _, key := range used {
		inUse[key] = true
	}
	return inUse, nil
}

// attachCategories load categories cho cả danh sách bằng một query (ANY($1))
func (r *postgresRepository) attachCategories(ctx context.Context, stars []model.Star) error {
	if len(stars) == 0 {
		return nil
	}

	ids := make([]int64, len(stars))
	index := make(map[int64]int, len(stars))
	for i := range stars {
		ids[i] = stars[i].ID
		index[stars[i].ID] = i
		stars[i].Categories = []categorymodel.Category{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT sc.star_id, c.id, c.title, c.slug
		FROM star_categories sc
		JOIN categories c ON c.id = sc.category_id
		WHERE sc.star_id = ANY($1)
		ORDER BY c.title, c.id`, ids)
	if err != nil {
		return fmt.Errorf("load star categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var starID int64
		var c categorymodel.Category
		if err := rows.Scan(&starID, &c.ID, &c.Title, &c.Slug); err != nil {
			return fmt.Errorf("scan star category: %w", err)
		}
		if i, ok := index[starID]; ok {
			stars[i].Categories = append(stars[i].Categories, c)
		}
	}
	return rows.Err()
}

func scanStar(row pgx.Row) (*model.Star, error) {
	var (
		s     model.Star
		photo *string
		birth time.Time
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &birth, &s.Content, &photo, &s.IsPublished,
		&s.TimeCreate, &s.TimeUpdate,
		&s.Country.ID, &s.Country.Name, &s.Country.Slug,
	)
	if err != nil {
		return nil, err
	}

	s.BirthDate = time.Date(birth.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if photo != nil {
		s.Photo = *photo
	}
	return &s, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrStarNotFound
	case database.IsUniqueViolation(err, slugConstraint):
		return fmt.Errorf("%s: %w", op, model.ErrDuplicateSlug)
	case database.IsForeignKeyViolation(err, countryConstraint):
		return fmt.Errorf("%s: %w", op, model.ErrUnknownCountry)
	case database.IsForeignKeyViolation(err, categoryLinkConstraint):
		return fmt.Errorf("%s: %w", op, model.ErrUnknownCategory)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
