package scoring

import "sort"

// AssignRanks sorts a snapshot's teams and fills in overall and per-division
// ranks. Teams whose division-level permissions lack RankOverall keep the
// sentinel rank 0 but still receive a division rank when they have a
// division. A zero score does not exclude a team from ranking.
func AssignRanks(snap *Snapshot, resolver *Resolver) {
	sort.SliceStable(snap.Teams, func(i, j int) bool {
		return teamLess(&snap.Teams[i], &snap.Teams[j])
	})

	overall := 0
	divisionCounters := make(map[string]int)
	for i := range snap.Teams {
		t := &snap.Teams[i]

		if resolver.ResolveDefault(t.TeamID).Has(PermRankOverall) {
			overall++
			t.OverallRank = overall
		} else {
			t.OverallRank = 0
		}

		if t.DivisionID != nil {
			divisionCounters[*t.DivisionID]++
			t.DivisionRank = divisionCounters[*t.DivisionID]
		}
	}
}

// teamLess orders teams by total score descending, then by the time the team
// reached its final score ascending (a team that never scored sorts last),
// then by team id for determinism.
func teamLess(a, b *TeamScore) bool {
	if a.Total != b.Total {
		return a.Total > b.Total
	}
	if !a.LastScoreAt.Equal(b.LastScoreAt) {
		if a.LastScoreAt.IsZero() {
			return false
		}
		if b.LastScoreAt.IsZero() {
			return true
		}
		return a.LastScoreAt.Before(b.LastScoreAt)
	}
	return a.TeamID < b.TeamID
}
