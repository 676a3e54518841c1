package domain

import "time"

// Category is a catalog category. Categories form a tree through ParentID;
// the slug is immutable once assigned.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	ParentID    *int64    `db:"parent_id" json:"parent_id,omitempty"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	IsRoot      bool      `db:"is_root" json:"is_root"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// URL is the canonical public path for the category.
func (c *Category) URL() string {
	return "/catalog/categories/" + c.Slug
}
