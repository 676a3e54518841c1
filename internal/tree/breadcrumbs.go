package tree

import (
	"context"

	"partner_cabinet/internal/logger"
)

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Breadcrumber is implemented by anything that can appear in a breadcrumb
// trail. Each concrete entity (category, product, user) provides its own
// implementation; the caller picks which one to use.
type Breadcrumber interface {
	Crumb() Crumb
	// Parent returns the parent entry, or nil when this is a root.
	Parent(ctx context.Context) (Breadcrumber, error)
}

// Trail walks the ancestor chain of b and returns the ordered trail from the
// ultimate root down to b itself. The synthetic home entry is prepended
// unless the trail already starts with it. A dangling parent reference
// surfaces as the error returned by Parent.
func Trail(ctx context.Context, b Breadcrumber, home Crumb) ([]Crumb, error) {
	var crumbs []Crumb
	seen := make(map[Crumb]bool)

	for b != nil {
		c := b.Crumb()
		if seen[c] {
			logger.Warn("cycle detected in ancestor chain", "name", c.Name, "url", c.URL)
			break
		}
		seen[c] = true
		crumbs = append([]Crumb{c}, crumbs...)

		parent, err := b.Parent(ctx)
		if err != nil {
			return nil, err
		}
		b = parent
	}

	if len(crumbs) == 0 || crumbs[0].Name != home.Name {
		crumbs = append([]Crumb{home}, crumbs...)
	}
	return crumbs, nil
}
