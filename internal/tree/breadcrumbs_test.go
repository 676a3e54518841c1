package tree

import (
	"context"
	"errors"
	"testing"
)

// chainCrumb is a test Breadcrumber backed by a parent pointer.
type chainCrumb struct {
	name   string
	url    string
	parent *chainCrumb
	err    error
}

func (c *chainCrumb) Crumb() Crumb {
	return Crumb{Name: c.name, URL: c.url}
}

func (c *chainCrumb) Parent(_ context.Context) (Breadcrumber, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.parent == nil {
		return nil, nil
	}
	return c.parent, nil
}

var home = Crumb{Name: "Catalog", URL: "/catalog"}

func TestTrail_AncestorChain(t *testing.T) {
	catalog := &chainCrumb{name: "Catalog", url: "/catalog"}
	electronics := &chainCrumb{name: "Electronics", url: "/catalog/categories/electronics", parent: catalog}
	phones := &chainCrumb{name: "Phones", url: "/catalog/categories/phones", parent: electronics}

	crumbs, err := Trail(context.Background(), phones, home)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNames := []string{"Catalog", "Electronics", "Phones"}
	if len(crumbs) != len(wantNames) {
		t.Fatalf("got %d crumbs, want %d", len(crumbs), len(wantNames))
	}
	for i, name := range wantNames {
		if crumbs[i].Name != name {
			t.Fatalf("crumbs[%d].Name = %s, want %s", i, crumbs[i].Name, name)
		}
		if crumbs[i].URL == "" {
			t.Fatalf("crumbs[%d] has empty URL", i)
		}
	}
}

func TestTrail_RootOnly(t *testing.T) {
	solo := &chainCrumb{name: "Phones", url: "/catalog/categories/phones"}

	crumbs, err := Trail(context.Background(), solo, home)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// the synthetic home entry is prepended since the node's own name differs
	if len(crumbs) != 2 {
		t.Fatalf("got %d crumbs, want 2", len(crumbs))
	}
	if crumbs[0] != home {
		t.Fatalf("crumbs[0] = %+v, want home entry", crumbs[0])
	}
	if crumbs[1].Name != "Phones" {
		t.Fatalf("crumbs[1].Name = %s, want Phones", crumbs[1].Name)
	}
}

func TestTrail_HomeNotDuplicated(t *testing.T) {
	root := &chainCrumb{name: "Catalog", url: "/catalog"}

	crumbs, err := Trail(context.Background(), root, home)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(crumbs) != 1 {
		t.Fatalf("got %d crumbs, want 1 (home not duplicated)", len(crumbs))
	}
}

func TestTrail_DanglingParent(t *testing.T) {
	errGone := errors.New("category not found")
	broken := &chainCrumb{name: "Phones", url: "/p", err: errGone}

	_, err := Trail(context.Background(), broken, home)
	if !errors.Is(err, errGone) {
		t.Fatalf("got err %v, want %v", err, errGone)
	}
}

func TestTrail_ParentCycleTerminates(t *testing.T) {
	a := &chainCrumb{name: "A", url: "/a"}
	b := &chainCrumb{name: "B", url: "/b", parent: a}
	a.parent = b

	crumbs, err := Trail(context.Background(), a, home)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(crumbs) == 0 {
		t.Fatalf("expected a truncated trail, got none")
	}
}
