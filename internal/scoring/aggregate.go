package scoring

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Aggregator replays an accepted-submission log against a game configuration
// and produces a ranked snapshot. Replay is a pure fold over the stably
// sorted log: running it twice over the same inputs yields identical output.
type Aggregator struct {
	calc    Calculator
	factors BloodFactors
}

func NewAggregator(calc Calculator, factors BloodFactors) *Aggregator {
	if calc == nil {
		calc = DecayCalculator{}
	}
	return &Aggregator{calc: calc, factors: factors}
}

// BuildSnapshot computes the full scoreboard for one game.
//
// Submissions referencing a team or challenge absent from the configuration
// are skipped with a warning; a scoreboard is always produced. Disabled
// challenges and their solves are excluded entirely. Only a team's first
// accepted submission per challenge counts.
func (a *Aggregator) BuildSnapshot(cfg *GameConfig, subs []Submission) *Snapshot {
	resolver := NewResolver(cfg)

	challenges := make(map[string]*Challenge, len(cfg.Challenges))
	for i := range cfg.Challenges {
		if cfg.Challenges[i].Enabled {
			challenges[cfg.Challenges[i].ID] = &cfg.Challenges[i]
		}
	}

	rows := make(map[string]*TeamScore, len(cfg.Teams))
	for i := range cfg.Teams {
		t := &cfg.Teams[i]
		rows[t.ID] = &TeamScore{
			TeamID:     t.ID,
			Name:       t.Name,
			DivisionID: t.DivisionID,
			Solves:     []SolveEntry{},
			Timeline:   []TimelinePoint{},
		}
	}

	solves := validSolves(cfg, challenges, rows, subs)

	// Blood slots are assigned per challenge before scoring, over the same
	// chronological order the fold below observes.
	perChallenge := make(map[string][]Submission)
	for _, sub := range solves {
		perChallenge[sub.ChallengeID] = append(perChallenge[sub.ChallengeID], sub)
	}
	blood := make(map[string]map[string]BloodBonus, len(perChallenge))
	for id, chSolves := range perChallenge {
		blood[id] = AssignBlood(challenges[id], chSolves, resolver, a.factors)
	}

	// Chronological fold. solvedCounts tracks every accepted solve, including
	// those from teams that cannot see the score, so the decay curve reflects
	// how many teams have objectively solved the challenge.
	solvedCounts := make(map[string]int, len(challenges))
	for _, sub := range solves {
		ch := challenges[sub.ChallengeID]
		row := rows[sub.TeamID]
		perm := resolver.Resolve(sub.TeamID, ch.ID)

		contribution := 0
		slot := BloodNone
		if perm.Has(PermGetScore) {
			base := a.calc.CurrentScore(ch, solvedCounts[ch.ID])
			multiplier := 1.0
			if bonus, ok := blood[ch.ID][sub.TeamID]; ok {
				multiplier = bonus.Multiplier
				slot = bonus.Slot
			}
			contribution = int(math.Round(float64(base) * multiplier))
		}
		solvedCounts[ch.ID]++

		row.Solves = append(row.Solves, SolveEntry{
			ChallengeID: ch.ID,
			Score:       contribution,
			Blood:       slot,
			SolvedAt:    sub.SubmittedAt,
		})
		if contribution > 0 {
			row.Total += contribution
			row.LastScoreAt = sub.SubmittedAt
			row.Timeline = append(row.Timeline, TimelinePoint{Time: sub.SubmittedAt, Score: row.Total})
		}
	}

	snap := &Snapshot{
		GameID:      cfg.GameID,
		GeneratedAt: time.Now().UTC(),
		Teams:       make([]TeamScore, 0, len(rows)),
		Challenges:  make([]ChallengeStatus, 0, len(challenges)),
	}

	for i := range cfg.Teams {
		snap.Teams = append(snap.Teams, *rows[cfg.Teams[i].ID])
	}

	for i := range cfg.Challenges {
		ch := &cfg.Challenges[i]
		if !ch.Enabled {
			continue
		}
		holders := make([]BloodHolder, 0, 3)
		for teamID, bonus := range blood[ch.ID] {
			holders = append(holders, BloodHolder{TeamID: teamID, Slot: bonus.Slot})
		}
		sort.Slice(holders, func(i, j int) bool { return holders[i].Slot < holders[j].Slot })

		snap.Challenges = append(snap.Challenges, ChallengeStatus{
			ChallengeID:  ch.ID,
			Title:        ch.Title,
			Category:     ch.Category,
			CurrentScore: a.calc.CurrentScore(ch, solvedCounts[ch.ID]),
			SolvedCount:  solvedCounts[ch.ID],
			BloodHolders: holders,
		})
	}

	AssignRanks(snap, resolver)
	return snap
}

// validSolves sorts the log chronologically (insertion sequence breaks ties)
// and drops records the configuration cannot account for, plus any repeat
// solves by the same team on the same challenge.
func validSolves(cfg *GameConfig, challenges map[string]*Challenge, rows map[string]*TeamScore, subs []Submission) []Submission {
	ordered := make([]Submission, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].SubmittedAt.Equal(ordered[j].SubmittedAt) {
			return ordered[i].SubmittedAt.Before(ordered[j].SubmittedAt)
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	seen := make(map[string]map[string]bool)
	valid := ordered[:0]
	for _, sub := range ordered {
		if _, ok := rows[sub.TeamID]; !ok {
			zap.S().Warnf("game %s: submission %d references unknown team %s, skipping", cfg.GameID, sub.Seq, sub.TeamID)
			continue
		}
		if _, ok := challenges[sub.ChallengeID]; !ok {
			zap.S().Warnf("game %s: submission %d references unknown or disabled challenge %s, skipping", cfg.GameID, sub.Seq, sub.ChallengeID)
			continue
		}
		if seen[sub.TeamID][sub.ChallengeID] {
			zap.S().Warnf("game %s: team %s already solved challenge %s, skipping duplicate submission %d", cfg.GameID, sub.TeamID, sub.ChallengeID, sub.Seq)
			continue
		}
		if seen[sub.TeamID] == nil {
			seen[sub.TeamID] = make(map[string]bool)
		}
		seen[sub.TeamID][sub.ChallengeID] = true
		valid = append(valid, sub)
	}
	return valid
}
