package service

import (
	"context"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/tree"
)

// ChildLister lists the direct referrals of a user by public id.
type ChildLister interface {
	Children(ctx context.Context, userID string) ([]domain.User, error)
}

// StructureService flattens a user's whole referral subtree into the
// node/edge lists the cabinet renders as a graph.
type StructureService struct {
	users ChildLister
}

func NewStructureService(users ChildLister) *StructureService {
	return &StructureService{users: users}
}

// Tree walks the full descendant subtree of root. Depth is unbounded: the
// expected fan-out in this domain is small and the cycle guard inside
// tree.Walk bounds the worst case at one visit per user.
func (s *StructureService) Tree(ctx context.Context, root *domain.User) ([]tree.Node, []tree.Edge, error) {
	src := &referralChildSource{users: s.users}
	return tree.Walk(ctx, userNode(root), src)
}

type referralChildSource struct {
	users ChildLister
}

func (r *referralChildSource) Children(ctx context.Context, id string) ([]tree.Node, error) {
	children, err := r.users.Children(ctx, id)
	if err != nil {
		return nil, err
	}
	nodes := make([]tree.Node, 0, len(children))
	for i := range children {
		nodes = append(nodes, userNode(&children[i]))
	}
	return nodes, nil
}

func userNode(u *domain.User) tree.Node {
	return tree.Node{
		ID:             u.UserID,
		Label:          u.UserID,
		Title:          u.FullName(),
		Active:         u.IsActive,
		PersonalVolume: u.PersonalVolume,
		GroupVolume:    u.GroupVolume,
		PartnerLevel:   u.PartnerLevel,
		TotalReferrals: u.TotalReferrals,
	}
}
