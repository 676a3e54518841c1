package repository

import (
	"context"
	"errors"
	"fmt"

	"partner_cabinet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, name, slug, parent_id, description, is_active, is_root, created_at`

// descendant queries are depth-guarded: the category tree is expected to be
// shallow and a malformed parent chain must not blow up the CTE
const maxCategoryDepth = 32

type CategoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.Description,
		&c.IsActive, &c.IsRoot, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	return scanCategory(row)
}

// ListRoots returns active top-level categories.
func (r *CategoryRepository) ListRoots(ctx context.Context) ([]domain.Category, error) {
	return r.list(ctx,
		`SELECT `+categoryColumns+`
		 FROM categories WHERE parent_id IS NULL AND is_active ORDER BY name`)
}

// ListChildren returns the active direct subcategories of a category.
func (r *CategoryRepository) ListChildren(ctx context.Context, parentID int64) ([]domain.Category, error) {
	return r.list(ctx,
		`SELECT `+categoryColumns+`
		 FROM categories WHERE parent_id = $1 AND is_active ORDER BY name`, parentID)
}

func (r *CategoryRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, *c)
	}
	return cats, rows.Err()
}

// DescendantIDs returns the category id together with all transitive
// descendant ids, for products-in-subtree filtering.
func (r *CategoryRepository) DescendantIDs(ctx context.Context, id int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`WITH RECURSIVE subtree AS (
			SELECT id, 0 AS depth FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, s.depth + 1
			FROM categories c
			JOIN subtree s ON c.parent_id = s.id
			WHERE s.depth < $2
		)
		SELECT id FROM subtree`,
		id, maxCategoryDepth,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var cid int64
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		ids = append(ids, cid)
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	return ids, rows.Err()
}

// Create inserts a category, deriving a unique slug from the name. Slugs are
// immutable once assigned; collisions get a numeric suffix.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	base := slugify(c.Name)
	if base == "" {
		base = "category"
	}

	slug := base
	for counter := 1; ; counter++ {
		var exists bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1)`, slug,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
	c.Slug = slug

	return r.db.QueryRow(ctx,
		`INSERT INTO categories (name, slug, parent_id, description, is_active, is_root)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		c.Name, c.Slug, c.ParentID, c.Description, c.IsActive, c.IsRoot,
	).Scan(&c.ID, &c.CreatedAt)
}
