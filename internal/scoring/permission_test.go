package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func permTestConfig() *GameConfig {
	return &GameConfig{
		GameID: "g1",
		Teams: []Team{
			{ID: "t1", Name: "alpha", DivisionID: strPtr("d1")},
			{ID: "t2", Name: "bravo"},
		},
		Divisions: []Division{
			{
				ID:                 "d1",
				Name:               "students",
				DefaultPermissions: PermAll,
				ChallengeConfigs: []ChallengeConfig{
					{ChallengeID: "c1", Permissions: PermViewChallenge | PermSubmitFlags},
					{ChallengeID: "missing", Permissions: PermAll},
				},
			},
		},
		Challenges: []Challenge{
			{ID: "c1", Title: "web 100", Enabled: true},
			{ID: "c2", Title: "pwn 200", Enabled: true},
		},
	}
}

func TestResolveOverrideReplacesDefaultEntirely(t *testing.T) {
	r := NewResolver(permTestConfig())

	effective := r.Resolve("t1", "c1")
	assert.True(t, effective.Has(PermViewChallenge))
	assert.True(t, effective.Has(PermSubmitFlags))
	assert.False(t, effective.Has(PermGetScore), "override must not inherit GetScore from the division default")
	assert.False(t, effective.Has(PermGetBlood), "override must not inherit GetBlood from the division default")
}

func TestResolveFallsBackToDivisionDefault(t *testing.T) {
	r := NewResolver(permTestConfig())

	assert.Equal(t, PermAll, r.Resolve("t1", "c2"))
}

func TestResolveTeamWithoutDivisionGetsOpenPermissions(t *testing.T) {
	r := NewResolver(permTestConfig())

	assert.Equal(t, OpenPermissions, r.Resolve("t2", "c1"))
	assert.Equal(t, OpenPermissions, r.Resolve("unknown-team", "c1"))
}

func TestResolveIgnoresOverrideForUnknownChallenge(t *testing.T) {
	r := NewResolver(permTestConfig())

	// The dangling override is dropped at index time, so an eventual lookup
	// for that id falls through to the division default.
	assert.Equal(t, PermAll, r.Resolve("t1", "missing"))
}

func TestResolveDefaultUsesDivisionDefault(t *testing.T) {
	cfg := permTestConfig()
	cfg.Divisions[0].DefaultPermissions = PermAll &^ PermRankOverall
	r := NewResolver(cfg)

	assert.False(t, r.ResolveDefault("t1").Has(PermRankOverall))
	assert.True(t, r.ResolveDefault("t2").Has(PermRankOverall))
}

func TestPermissionHas(t *testing.T) {
	p := PermViewChallenge | PermSubmitFlags

	assert.True(t, p.Has(PermViewChallenge))
	assert.True(t, p.Has(PermViewChallenge|PermSubmitFlags))
	assert.False(t, p.Has(PermGetScore))
	assert.False(t, p.Has(PermViewChallenge|PermGetScore))
}
