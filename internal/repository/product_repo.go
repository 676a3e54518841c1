package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"partner_cabinet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, slug, category_id, description, price, in_stock, is_active, created_at`

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	CategoryIDs []int64 // category subtree, empty means all
	MinPrice    *float64
	MaxPrice    *float64
	InStock     bool
	Sort        string // price_asc, price_desc, name_asc, name_desc, newest
	Page        int
	PageSize    int
}

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.Description,
		&p.Price, &p.InStock, &p.IsActive, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetBySlug returns an active product by slug.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1 AND is_active`, slug)
	return scanProduct(row)
}

// List returns one page of active products matching the filter plus the
// total match count for pagination.
func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]domain.Product, int, error) {
	where := []string{"is_active"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.CategoryIDs) > 0 {
		where = append(where, "category_id = ANY("+arg(f.CategoryIDs)+")")
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.InStock {
		where = append(where, "in_stock")
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE `+cond, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	order := "name"
	switch f.Sort {
	case "price_asc":
		order = "price"
	case "price_desc":
		order = "price DESC"
	case "name_desc":
		order = "name DESC"
	case "newest":
		order = "created_at DESC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 || size > 100 {
		size = 12
	}

	sql := fmt.Sprintf(
		`SELECT `+productColumns+` FROM products WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		cond, order, size, (page-1)*size,
	)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

// Create inserts a product with a unique slug derived from the name.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	base := slugify(p.Name)
	if base == "" {
		base = "product"
	}

	slug := base
	for counter := 1; ; counter++ {
		var exists bool
		err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM products WHERE slug = $1)`, slug,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
	p.Slug = slug

	return r.db.QueryRow(ctx,
		`INSERT INTO products (name, slug, category_id, description, price, in_stock, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.Name, p.Slug, p.CategoryID, p.Description, p.Price, p.InStock, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt)
}
