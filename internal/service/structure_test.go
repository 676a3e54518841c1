package service

import (
	"context"
	"testing"

	"partner_cabinet/internal/domain"
)

type fakeChildren map[string][]domain.User

func (f fakeChildren) Children(_ context.Context, id string) ([]domain.User, error) {
	return f[id], nil
}

func TestTree_LinearReferralChain(t *testing.T) {
	u1 := user("00000001", "Root", 0)
	u2 := user("00000002", "Anna", 0)
	u3 := user("00000003", "Boris", 0)

	children := fakeChildren{
		"00000001": {*u2},
		"00000002": {*u3},
	}

	svc := NewStructureService(children)
	nodes, edges, err := svc.Tree(context.Background(), u1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNodes := []string{"00000001", "00000002", "00000003"}
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	for i, id := range wantNodes {
		if nodes[i].ID != id {
			t.Fatalf("nodes[%d].ID = %s, want %s", i, nodes[i].ID, id)
		}
	}
	if nodes[0].Level != 0 || nodes[1].Level != 1 || nodes[2].Level != 2 {
		t.Fatalf("levels = %d/%d/%d, want 0/1/2", nodes[0].Level, nodes[1].Level, nodes[2].Level)
	}

	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(edges))
	}
	if edges[0].From != "00000001" || edges[0].To != "00000002" {
		t.Fatalf("edges[0] = %+v, want 00000001->00000002", edges[0])
	}
	if edges[1].From != "00000002" || edges[1].To != "00000003" {
		t.Fatalf("edges[1] = %+v, want 00000002->00000003", edges[1])
	}
}

func TestTree_NodeCarriesProfileFields(t *testing.T) {
	root := &domain.User{
		UserID:         "00000001",
		FirstName:      "Ivan",
		LastName:       "Petrov",
		IsActive:       true,
		PersonalVolume: 150,
		GroupVolume:    900,
		PartnerLevel:   "Silver",
		TotalReferrals: 4,
	}

	svc := NewStructureService(fakeChildren{})
	nodes, _, err := svc.Tree(context.Background(), root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := nodes[0]
	if n.Label != "00000001" || n.Title != "Ivan Petrov" {
		t.Fatalf("node label/title = %s/%s", n.Label, n.Title)
	}
	if n.PersonalVolume != 150 || n.GroupVolume != 900 || n.PartnerLevel != "Silver" || n.TotalReferrals != 4 {
		t.Fatalf("node aggregates not carried over: %+v", n)
	}
}
