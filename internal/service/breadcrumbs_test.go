package service

import (
	"context"
	"errors"
	"testing"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/repository"
	"partner_cabinet/internal/tree"
)

type fakeCategories map[int64]*domain.Category

func (f fakeCategories) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func ptr(v int64) *int64 { return &v }

func TestCategoryBreadcrumbs(t *testing.T) {
	cats := fakeCategories{
		1: {ID: 1, Name: "Catalog", Slug: "catalog", IsRoot: true},
		2: {ID: 2, Name: "Electronics", Slug: "electronics", ParentID: ptr(1)},
		3: {ID: 3, Name: "Phones", Slug: "phones", ParentID: ptr(2)},
	}

	crumbs, err := tree.Trail(context.Background(),
		&CategoryCrumb{Category: cats[3], Repo: cats}, CatalogHome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Catalog", "Electronics", "Phones"}
	if len(crumbs) != len(want) {
		t.Fatalf("got %d crumbs (%v), want %d", len(crumbs), crumbs, len(want))
	}
	for i, name := range want {
		if crumbs[i].Name != name {
			t.Fatalf("crumbs[%d].Name = %s, want %s", i, crumbs[i].Name, name)
		}
	}
}

func TestProductBreadcrumbs(t *testing.T) {
	cats := fakeCategories{
		1: {ID: 1, Name: "Catalog", Slug: "catalog", IsRoot: true},
		2: {ID: 2, Name: "Electronics", Slug: "electronics", ParentID: ptr(1)},
		3: {ID: 3, Name: "Phones", Slug: "phones", ParentID: ptr(2)},
	}
	product := &domain.Product{Name: "iPhone 13", Slug: "iphone-13", CategoryID: 3}

	crumbs, err := tree.Trail(context.Background(),
		&ProductCrumb{Product: product, Repo: cats}, CatalogHome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(crumbs) != 4 {
		t.Fatalf("got %d crumbs (%v), want 4", len(crumbs), crumbs)
	}
	if crumbs[3].Name != "iPhone 13" || crumbs[3].URL != "/catalog/products/iphone-13" {
		t.Fatalf("last crumb = %+v, want the product itself", crumbs[3])
	}
}

func TestCategoryBreadcrumbs_DanglingParent(t *testing.T) {
	cats := fakeCategories{
		3: {ID: 3, Name: "Phones", Slug: "phones", ParentID: ptr(99)},
	}

	_, err := tree.Trail(context.Background(),
		&CategoryCrumb{Category: cats[3], Repo: cats}, CatalogHome)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("got err %v, want ErrNotFound for dangling parent", err)
	}
}

type fakeUserGetter map[int64]*domain.User

func (f fakeUserGetter) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func TestUserBreadcrumbs_ReferrerChain(t *testing.T) {
	users := fakeUserGetter{
		1: {ID: 1, UserID: "00000001", FirstName: "Root"},
		2: {ID: 2, UserID: "00000002", FirstName: "Anna", ReferrerID: ptr(1)},
	}

	crumbs, err := tree.Trail(context.Background(),
		&UserCrumb{User: users[2], Repo: users}, CabinetHome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// home + root + node
	if len(crumbs) != 3 {
		t.Fatalf("got %d crumbs (%v), want 3", len(crumbs), crumbs)
	}
	if crumbs[0] != CabinetHome {
		t.Fatalf("crumbs[0] = %+v, want the synthetic home entry", crumbs[0])
	}
	if crumbs[2].URL != "/partners/00000002" {
		t.Fatalf("crumbs[2].URL = %s", crumbs[2].URL)
	}
}
