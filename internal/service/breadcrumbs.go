package service

import (
	"context"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/tree"
)

// Home entries for the two breadcrumb roots. Neither is a persisted node.
var (
	CatalogHome = tree.Crumb{Name: "Catalog", URL: "/catalog"}
	CabinetHome = tree.Crumb{Name: "Cabinet", URL: "/cabinet"}
)

// CategoryGetter is the slice of the category repository breadcrumbs need.
type CategoryGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

// UserGetter is the slice of the user repository breadcrumbs need.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CategoryCrumb adapts a category to the breadcrumb capability. A dangling
// parent reference surfaces as the repository's ErrNotFound.
type CategoryCrumb struct {
	Category *domain.Category
	Repo     CategoryGetter
}

func (c *CategoryCrumb) Crumb() tree.Crumb {
	return tree.Crumb{Name: c.Category.Name, URL: c.Category.URL()}
}

func (c *CategoryCrumb) Parent(ctx context.Context) (tree.Breadcrumber, error) {
	if c.Category.ParentID == nil {
		return nil, nil
	}
	parent, err := c.Repo.GetByID(ctx, *c.Category.ParentID)
	if err != nil {
		return nil, err
	}
	return &CategoryCrumb{Category: parent, Repo: c.Repo}, nil
}

// ProductCrumb adapts a product: its parent is the owning category.
type ProductCrumb struct {
	Product *domain.Product
	Repo    CategoryGetter
}

func (p *ProductCrumb) Crumb() tree.Crumb {
	return tree.Crumb{Name: p.Product.Name, URL: p.Product.URL()}
}

func (p *ProductCrumb) Parent(ctx context.Context) (tree.Breadcrumber, error) {
	cat, err := p.Repo.GetByID(ctx, p.Product.CategoryID)
	if err != nil {
		return nil, err
	}
	return &CategoryCrumb{Category: cat, Repo: p.Repo}, nil
}

// UserCrumb adapts a user: the ancestor chain is the referrer chain.
type UserCrumb struct {
	User *domain.User
	Repo UserGetter
}

func (u *UserCrumb) Crumb() tree.Crumb {
	return tree.Crumb{Name: u.User.FullName(), URL: "/partners/" + u.User.UserID}
}

func (u *UserCrumb) Parent(ctx context.Context) (tree.Breadcrumber, error) {
	if u.User.ReferrerID == nil {
		return nil, nil
	}
	ref, err := u.Repo.GetByID(ctx, *u.User.ReferrerID)
	if err != nil {
		return nil, err
	}
	return &UserCrumb{User: ref, Repo: u.Repo}, nil
}
