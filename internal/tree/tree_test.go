package tree

import (
	"context"
	"testing"
)

// mapSource serves children from an in-memory adjacency map.
type mapSource struct {
	children map[string][]Node
}

func (m *mapSource) Children(_ context.Context, id string) ([]Node, error) {
	return m.children[id], nil
}

func TestWalk_LinearChain(t *testing.T) {
	// U1 refers U2, who refers U3
	src := &mapSource{children: map[string][]Node{
		"U1": {{ID: "U2", Label: "U2"}},
		"U2": {{ID: "U3", Label: "U3"}},
	}}

	nodes, edges, err := Walk(context.Background(), Node{ID: "U1", Label: "U1"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"U1", "U2", "U3"}
	if len(nodes) != len(wantOrder) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(wantOrder))
	}
	for i, id := range wantOrder {
		if nodes[i].ID != id {
			t.Fatalf("nodes[%d].ID = %s, want %s", i, nodes[i].ID, id)
		}
		if nodes[i].Level != i {
			t.Fatalf("nodes[%d].Level = %d, want %d", i, nodes[i].Level, i)
		}
	}

	wantEdges := []Edge{{From: "U1", To: "U2"}, {From: "U2", To: "U3"}}
	if len(edges) != len(wantEdges) {
		t.Fatalf("got %d edges, want %d", len(edges), len(wantEdges))
	}
	for i, e := range wantEdges {
		if edges[i] != e {
			t.Fatalf("edges[%d] = %+v, want %+v", i, edges[i], e)
		}
	}
}

func TestWalk_CycleTerminates(t *testing.T) {
	// malformed data: A -> B -> A
	src := &mapSource{children: map[string][]Node{
		"A": {{ID: "B"}},
		"B": {{ID: "A"}},
	}}

	nodes, edges, err := Walk(context.Background(), Node{ID: "A"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2 (each visited exactly once)", len(nodes))
	}
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if edges[0] != (Edge{From: "A", To: "B"}) {
		t.Fatalf("edge = %+v, want A->B only", edges[0])
	}
}

func TestWalk_EdgeNodeConsistency(t *testing.T) {
	src := &mapSource{children: map[string][]Node{
		"root": {{ID: "a"}, {ID: "b"}},
		"a":    {{ID: "a1"}, {ID: "a2"}},
		"b":    {{ID: "b1"}},
	}}

	nodes, edges, err := Walk(context.Background(), Node{ID: "root"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}
	for _, e := range edges {
		if !ids[e.From] || !ids[e.To] {
			t.Fatalf("edge %+v references id missing from nodes", e)
		}
	}

	// connected, cycle-free subtree: E = N - 1
	if len(edges) != len(nodes)-1 {
		t.Fatalf("E = %d, want N-1 = %d", len(edges), len(nodes)-1)
	}
}

func TestWalk_SingleNode(t *testing.T) {
	src := &mapSource{children: map[string][]Node{}}

	nodes, edges, err := Walk(context.Background(), Node{ID: "solo"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Level != 0 {
		t.Fatalf("got nodes %+v, want single level-0 node", nodes)
	}
	if len(edges) != 0 {
		t.Fatalf("got %d edges, want 0", len(edges))
	}
}
