package service

import (
	"context"
	"errors"

	"partner_cabinet/internal/domain"
	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/stats"
)

// MaxTeamLevel bounds the level parameter a caller may request. This is
// input validation, not a traversal policy.
const MaxTeamLevel = 10

// ErrInvalidLevel rejects a malformed depth request.
var ErrInvalidLevel = errors.New("level must be between 1 and 10")

// TeamMember is one row of the bounded-level team listing: locally persisted
// fields merged with the stats service's instantaneous numbers.
type TeamMember struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Level  int    `json:"level"`
	Active bool   `json:"active"`

	// instantaneous, from the stats service
	PersonalVolume float64 `json:"personal_volume"`
	TeamCount      int     `json:"team_count"`

	// locally stored aggregate; drifts from the external number by design
	GroupVolume float64 `json:"group_volume"`
}

// TeamUserSource is the slice of the user repository the team listing needs.
type TeamUserSource interface {
	Children(ctx context.Context, userID string) ([]domain.User, error)
	GetByUserID(ctx context.Context, userID string) (*domain.User, error)
}

// StructureSource is the node-scoped structure read of the stats service.
type StructureSource interface {
	StructureOf(ctx context.Context, userID string) (*stats.Structure, error)
}

// TeamService produces the level-bounded team listing. Levels beyond the
// first require one structure lookup per visited node; a failed lookup
// silently prunes that node's subtree so a partial result survives.
type TeamService struct {
	users     TeamUserSource
	structure StructureSource
}

func NewTeamService(users TeamUserSource, structure StructureSource) *TeamService {
	return &TeamService{users: users, structure: structure}
}

// Members returns the team of rootID down to the requested level. Level 1
// lists direct referrals from the local store, decorated with each child's
// instantaneous personal volume when the root's structure read succeeds.
func (s *TeamService) Members(ctx context.Context, rootID string, level int) ([]TeamMember, error) {
	if level < 1 || level > MaxTeamLevel {
		return nil, ErrInvalidLevel
	}

	children, err := s.users.Children(ctx, rootID)
	if err != nil {
		return nil, err
	}

	// one structure read for the root decorates all level-1 members
	volatile := map[string]stats.StructureMember{}
	if st, err := s.structure.StructureOf(ctx, rootID); err == nil {
		for _, m := range st.Team {
			volatile[m.UserID] = m
		}
	} else {
		logger.Warn("structure lookup failed for root, level-1 volumes omitted",
			"user_id", rootID, "error", err)
	}

	seen := map[string]bool{rootID: true}
	var members []TeamMember

	for i := range children {
		child := &children[i]
		if seen[child.UserID] {
			continue
		}
		seen[child.UserID] = true

		m := localMember(child, 1)
		if v, ok := volatile[child.UserID]; ok {
			m.PersonalVolume = v.PersonalVolume
			m.TeamCount = v.TeamCount
		}
		members = append(members, m)

		if level > 1 {
			s.expand(ctx, child.UserID, 2, level, seen, &members)
		}
	}
	return members, nil
}

// expand pulls the immediate team of id from the stats service and recurses
// until maxLevel. Any per-node failure (timeout, error status, malformed
// payload) drops that subtree without touching records gathered so far; the
// caller cannot distinguish a failed branch from an empty one.
func (s *TeamService) expand(ctx context.Context, id string, depth, maxLevel int, seen map[string]bool, out *[]TeamMember) {
	st, err := s.structure.StructureOf(ctx, id)
	if err != nil {
		logger.Warn("structure lookup failed, skipping subtree",
			"user_id", id, "level", depth, "error", err)
		return
	}

	for _, entry := range st.Team {
		if seen[entry.UserID] {
			logger.Warn("cycle detected in external structure, truncating branch",
				"parent", id, "child", entry.UserID)
			continue
		}
		seen[entry.UserID] = true

		local, err := s.users.GetByUserID(ctx, entry.UserID)
		if err != nil {
			// the stats service knows a user the local store does not;
			// skip it rather than emit a half-empty record
			logger.Warn("team member missing locally, skipping",
				"user_id", entry.UserID, "error", err)
			continue
		}

		m := localMember(local, depth)
		m.PersonalVolume = entry.PersonalVolume
		m.TeamCount = entry.TeamCount
		*out = append(*out, m)

		if depth < maxLevel {
			s.expand(ctx, entry.UserID, depth+1, maxLevel, seen, out)
		}
	}
}

func localMember(u *domain.User, level int) TeamMember {
	return TeamMember{
		UserID:      u.UserID,
		Name:        u.FullName(),
		Email:       u.Email,
		Phone:       u.Phone,
		Level:       level,
		Active:      u.IsActive,
		GroupVolume: u.GroupVolume,
	}
}
