package domain

import "time"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	InStock     bool      `db:"in_stock" json:"in_stock"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// URL is the canonical public path for the product.
func (p *Product) URL() string {
	return "/catalog/products/" + p.Slug
}
