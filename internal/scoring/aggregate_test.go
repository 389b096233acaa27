package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggBase = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func sweepConfig() *GameConfig {
	return &GameConfig{
		GameID: "g1",
		Teams: []Team{
			{ID: "t1", Name: "alpha"},
			{ID: "t2", Name: "bravo"},
		},
		Challenges: []Challenge{
			{ID: "c1", Title: "web", OriginalScore: 500, Difficulty: 50, Enabled: true},
			{ID: "c2", Title: "pwn", OriginalScore: 1000, Difficulty: 50, Enabled: true},
			{ID: "c3", Title: "crypto", OriginalScore: 1500, Difficulty: 50, Enabled: true},
		},
	}
}

func TestAggregateFirstBloodSweep(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)

	// t1 solves every challenge first: 500*2 + 1000*2 + 1500*2
	subs := []Submission{
		{Seq: 1, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase},
		{Seq: 2, TeamID: "t1", ChallengeID: "c2", SubmittedAt: aggBase.Add(time.Minute)},
		{Seq: 3, TeamID: "t1", ChallengeID: "c3", SubmittedAt: aggBase.Add(2 * time.Minute)},
	}

	snap := agg.BuildSnapshot(sweepConfig(), subs)
	row := snap.Team("t1")
	require.NotNil(t, row)
	assert.Equal(t, 6000, row.Total)
	require.Len(t, row.Solves, 3)
	for _, solve := range row.Solves {
		assert.Equal(t, BloodFirst, solve.Blood)
	}
	assert.Equal(t, 1, row.OverallRank)
}

func TestAggregateScorelessSolveStillDrivesDecay(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)

	cfg := &GameConfig{
		GameID: "g1",
		Teams: []Team{
			{ID: "hidden", Name: "hidden", DivisionID: strPtr("d1")},
			{ID: "open", Name: "open"},
		},
		Divisions: []Division{
			{ID: "d1", DefaultPermissions: PermViewChallenge | PermSubmitFlags},
		},
		Challenges: []Challenge{
			{ID: "c1", OriginalScore: 1000, MinScoreRate: 0, Difficulty: 1, Enabled: true, DisableBloodBonus: true},
		},
	}
	subs := []Submission{
		{Seq: 1, TeamID: "hidden", ChallengeID: "c1", SubmittedAt: aggBase},
		{Seq: 2, TeamID: "open", ChallengeID: "c1", SubmittedAt: aggBase.Add(time.Minute)},
	}

	snap := agg.BuildSnapshot(cfg, subs)

	hidden := snap.Team("hidden")
	require.NotNil(t, hidden)
	assert.Equal(t, 0, hidden.Total)
	require.Len(t, hidden.Solves, 1, "a scoreless solve still shows on the board")
	assert.Equal(t, 0, hidden.Solves[0].Score)
	assert.Empty(t, hidden.Timeline)

	// The second solver pays for one prior solve: with difficulty 1 the
	// curve halves, so the base is 500 rather than 1000.
	open := snap.Team("open")
	require.NotNil(t, open)
	require.Len(t, open.Solves, 1)
	assert.Equal(t, 500, open.Solves[0].Score)

	require.Len(t, snap.Challenges, 1)
	assert.Equal(t, 2, snap.Challenges[0].SolvedCount)
}

func TestAggregateIdempotentReplay(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)
	cfg := sweepConfig()
	subs := []Submission{
		{Seq: 1, TeamID: "t2", ChallengeID: "c2", SubmittedAt: aggBase},
		{Seq: 2, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase.Add(time.Minute)},
		{Seq: 3, TeamID: "t1", ChallengeID: "c2", SubmittedAt: aggBase.Add(2 * time.Minute)},
		{Seq: 4, TeamID: "t2", ChallengeID: "c1", SubmittedAt: aggBase.Add(3 * time.Minute)},
	}

	first := agg.BuildSnapshot(cfg, subs)
	second := agg.BuildSnapshot(cfg, subs)

	assert.Equal(t, first.Teams, second.Teams)
	assert.Equal(t, first.Challenges, second.Challenges)
}

func TestAggregateEqualTimestampsBreakTiesBySeq(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)
	cfg := sweepConfig()

	// Same instant: the lower sequence number is the first blood.
	subs := []Submission{
		{Seq: 9, TeamID: "t2", ChallengeID: "c1", SubmittedAt: aggBase},
		{Seq: 3, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase},
	}

	snap := agg.BuildSnapshot(cfg, subs)
	require.Len(t, snap.Team("t1").Solves, 1)
	assert.Equal(t, BloodFirst, snap.Team("t1").Solves[0].Blood)
	assert.Equal(t, BloodSecond, snap.Team("t2").Solves[0].Blood)
}

func TestAggregateSkipsDuplicateAndUnknownRecords(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)
	cfg := sweepConfig()
	subs := []Submission{
		{Seq: 1, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase},
		{Seq: 2, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase.Add(time.Minute)},
		{Seq: 3, TeamID: "ghost", ChallengeID: "c1", SubmittedAt: aggBase.Add(2 * time.Minute)},
		{Seq: 4, TeamID: "t2", ChallengeID: "nope", SubmittedAt: aggBase.Add(3 * time.Minute)},
	}

	snap := agg.BuildSnapshot(cfg, subs)

	require.Len(t, snap.Team("t1").Solves, 1)
	assert.Equal(t, 1000, snap.Team("t1").Total)
	assert.Equal(t, 1, snap.Challenges[0].SolvedCount)
	assert.Empty(t, snap.Team("t2").Solves)
}

func TestAggregateExcludesDisabledChallenges(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)
	cfg := sweepConfig()
	cfg.Challenges[0].Enabled = false
	subs := []Submission{
		{Seq: 1, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase},
	}

	snap := agg.BuildSnapshot(cfg, subs)

	assert.Equal(t, 0, snap.Team("t1").Total)
	require.Len(t, snap.Challenges, 2)
	for _, ch := range snap.Challenges {
		assert.NotEqual(t, "c1", ch.ChallengeID)
	}
}

func TestAggregateTimelineTracksRunningTotal(t *testing.T) {
	agg := NewAggregator(DecayCalculator{}, DefaultBloodFactors)
	cfg := sweepConfig()
	subs := []Submission{
		{Seq: 1, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase},
		{Seq: 2, TeamID: "t1", ChallengeID: "c2", SubmittedAt: aggBase.Add(time.Minute)},
	}

	snap := agg.BuildSnapshot(cfg, subs)
	row := snap.Team("t1")
	require.Len(t, row.Timeline, 2)
	assert.Equal(t, 1000, row.Timeline[0].Score)
	assert.Equal(t, 3000, row.Timeline[1].Score)
	assert.True(t, row.Timeline[0].Time.Before(row.Timeline[1].Time))
	assert.Equal(t, row.Timeline[1].Time, row.LastScoreAt)
}

func TestAggregateChallengeStatusReflectsNextSolverValue(t *testing.T) {
	calc := DecayCalculator{}
	agg := NewAggregator(calc, DefaultBloodFactors)
	cfg := sweepConfig()
	subs := []Submission{
		{Seq: 1, TeamID: "t1", ChallengeID: "c1", SubmittedAt: aggBase},
		{Seq: 2, TeamID: "t2", ChallengeID: "c1", SubmittedAt: aggBase.Add(time.Minute)},
	}

	snap := agg.BuildSnapshot(cfg, subs)

	var status *ChallengeStatus
	for i := range snap.Challenges {
		if snap.Challenges[i].ChallengeID == "c1" {
			status = &snap.Challenges[i]
		}
	}
	require.NotNil(t, status)
	assert.Equal(t, 2, status.SolvedCount)
	assert.Equal(t, calc.CurrentScore(&cfg.Challenges[0], 2), status.CurrentScore)
	require.Len(t, status.BloodHolders, 2)
	assert.Equal(t, BloodHolder{TeamID: "t1", Slot: BloodFirst}, status.BloodHolders[0])
	assert.Equal(t, BloodHolder{TeamID: "t2", Slot: BloodSecond}, status.BloodHolders[1])
}
