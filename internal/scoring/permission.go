package scoring

import (
	"go.uber.org/zap"
)

// Permission is a bitmask of per-team capabilities for a challenge.
type Permission uint32

const (
	PermJoinGame Permission = 1 << iota
	PermViewChallenge
	PermSubmitFlags
	PermGetScore
	PermGetBlood
	PermRankOverall
	PermRequireReview
)

// PermAll grants every scoring and visibility capability. Review gating is
// handled by the join subsystem and is not part of this set.
const PermAll = PermJoinGame | PermViewChallenge | PermSubmitFlags |
	PermGetScore | PermGetBlood | PermRankOverall

// OpenPermissions is what a team without a division resolves to.
const OpenPermissions = PermAll

func (p Permission) Has(flag Permission) bool {
	return p&flag == flag
}

// Resolver answers effective permission lookups for (team, challenge) pairs.
// A division-challenge override replaces the division default wholesale; the
// two sets are never merged bit by bit.
type Resolver struct {
	teams     map[string]*Team
	divisions map[string]*Division
	overrides map[string]map[string]Permission // division id -> challenge id -> set
}

// NewResolver indexes a game configuration for permission lookups.
// Overrides that reference a challenge absent from the configuration are
// dropped with a warning, falling back to the division default.
func NewResolver(cfg *GameConfig) *Resolver {
	r := &Resolver{
		teams:     make(map[string]*Team, len(cfg.Teams)),
		divisions: make(map[string]*Division, len(cfg.Divisions)),
		overrides: make(map[string]map[string]Permission, len(cfg.Divisions)),
	}

	known := make(map[string]struct{}, len(cfg.Challenges))
	for i := range cfg.Challenges {
		known[cfg.Challenges[i].ID] = struct{}{}
	}

	for i := range cfg.Teams {
		r.teams[cfg.Teams[i].ID] = &cfg.Teams[i]
	}

	for i := range cfg.Divisions {
		div := &cfg.Divisions[i]
		r.divisions[div.ID] = div

		for _, cc := range div.ChallengeConfigs {
			if _, ok := known[cc.ChallengeID]; !ok {
				zap.S().Warnf("division %s has a permission override for unknown challenge %s, ignoring it", div.ID, cc.ChallengeID)
				continue
			}
			if r.overrides[div.ID] == nil {
				r.overrides[div.ID] = make(map[string]Permission)
			}
			r.overrides[div.ID][cc.ChallengeID] = cc.Permissions
		}
	}

	return r
}

// Resolve returns the team's effective permission set for one challenge.
func (r *Resolver) Resolve(teamID, challengeID string) Permission {
	team, ok := r.teams[teamID]
	if !ok || team.DivisionID == nil {
		return OpenPermissions
	}

	div, ok := r.divisions[*team.DivisionID]
	if !ok {
		zap.S().Warnf("team %s references unknown division %s, using open permissions", teamID, *team.DivisionID)
		return OpenPermissions
	}

	if set, ok := r.overrides[div.ID][challengeID]; ok {
		return set
	}
	return div.DefaultPermissions
}

// ResolveDefault returns the team's division-level permission set, used for
// decisions that are not tied to a single challenge such as overall ranking.
func (r *Resolver) ResolveDefault(teamID string) Permission {
	team, ok := r.teams[teamID]
	if !ok || team.DivisionID == nil {
		return OpenPermissions
	}
	if div, ok := r.divisions[*team.DivisionID]; ok {
		return div.DefaultPermissions
	}
	return OpenPermissions
}
