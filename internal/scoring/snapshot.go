package scoring

import "time"

// SolveEntry is one accepted solve as it appears on the scoreboard. Score is
// the points the solve actually contributed, after the blood multiplier and
// after permission gating (zero when the team cannot score the challenge).
type SolveEntry struct {
	ChallengeID string    `json:"challenge_id"`
	Score       int       `json:"score"`
	Blood       BloodSlot `json:"blood"`
	SolvedAt    time.Time `json:"solved_at"`
}

// TimelinePoint is a team's running total at a point in time, for charts.
type TimelinePoint struct {
	Time  time.Time `json:"time"`
	Score int       `json:"score"`
}

// TeamScore is one team's row in a snapshot. OverallRank is 0 when the team
// is not eligible for overall ranking; DivisionRank is 0 when the team has
// no division.
type TeamScore struct {
	TeamID       string          `json:"team_id"`
	Name         string          `json:"name"`
	DivisionID   *string         `json:"division_id"`
	Total        int             `json:"total"`
	OverallRank  int             `json:"overall_rank"`
	DivisionRank int             `json:"division_rank"`
	LastScoreAt  time.Time       `json:"last_score_at"`
	Solves       []SolveEntry    `json:"solves"`
	Timeline     []TimelinePoint `json:"timeline"`
}

// BloodHolder names a team occupying one of a challenge's blood slots.
type BloodHolder struct {
	TeamID string    `json:"team_id"`
	Slot   BloodSlot `json:"slot"`
}

// ChallengeStatus is one challenge's row in a snapshot. CurrentScore is the
// base value the next solver would earn.
type ChallengeStatus struct {
	ChallengeID  string        `json:"challenge_id"`
	Title        string        `json:"title"`
	Category     string        `json:"category"`
	CurrentScore int           `json:"current_score"`
	SolvedCount  int           `json:"solved_count"`
	BloodHolders []BloodHolder `json:"blood_holders"`
}

// Snapshot is the complete computed scoreboard for one game. It is immutable
// once built; the cache replaces it wholesale on recomputation so concurrent
// readers never observe a partial update.
type Snapshot struct {
	GameID      string            `json:"game_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Teams       []TeamScore       `json:"teams"`
	Challenges  []ChallengeStatus `json:"challenges"`
}

// Team returns the row for one team, or nil if the team is unknown.
func (s *Snapshot) Team(teamID string) *TeamScore {
	for i := range s.Teams {
		if s.Teams[i].TeamID == teamID {
			return &s.Teams[i]
		}
	}
	return nil
}
