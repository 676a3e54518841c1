// Package tree implements traversal over self-referencing hierarchies:
// breadcrumb trails up the ancestor chain and flattened subtree walks down
// the descendant chain. It works on plain node values addressed by stable
// string ids; children are always a derived query against a ChildSource.
package tree

import (
	"context"

	"partner_cabinet/internal/logger"
)

// Node is one flattened entry of a subtree walk, shaped for tree/graph
// rendering on the client.
type Node struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Title          string  `json:"title"`
	Level          int     `json:"level"`
	Active         bool    `json:"active"`
	PersonalVolume float64 `json:"personal_volume"`
	GroupVolume    float64 `json:"group_volume"`
	PartnerLevel   string  `json:"partner_level"`
	TotalReferrals int     `json:"total_referrals"`
}

// Edge is a parent→child pair referencing Node ids.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ChildSource lists the direct children of a node. One call is issued per
// visited node; acceptable at the fan-out this domain sees.
type ChildSource interface {
	Children(ctx context.Context, id string) ([]Node, error)
}

// Walk traverses the whole subtree under root depth-first and returns the
// flattened node and edge lists. Levels are assigned by the walk, root at 0.
//
// A visited set guards against cycles: the hierarchy invariant forbids them,
// but malformed data must not cause infinite recursion or duplicate output.
// A node seen twice truncates that branch and is logged as a data anomaly.
func Walk(ctx context.Context, root Node, src ChildSource) ([]Node, []Edge, error) {
	w := &walker{
		src:  src,
		seen: make(map[string]bool),
	}
	if err := w.visit(ctx, root, 0); err != nil {
		return nil, nil, err
	}
	return w.nodes, w.edges, nil
}

type walker struct {
	src   ChildSource
	seen  map[string]bool
	nodes []Node
	edges []Edge
}

func (w *walker) visit(ctx context.Context, n Node, depth int) error {
	w.seen[n.ID] = true
	n.Level = depth
	w.nodes = append(w.nodes, n)

	children, err := w.src.Children(ctx, n.ID)
	if err != nil {
		return err
	}

	for _, c := range children {
		if w.seen[c.ID] {
			logger.Warn("cycle detected in hierarchy, truncating branch",
				"parent", n.ID, "child", c.ID)
			continue
		}
		w.edges = append(w.edges, Edge{From: n.ID, To: c.ID})
		if err := w.visit(ctx, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
