package scoring

import "time"

// Team is a read-only view of a registered team.
type Team struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DivisionID *string `json:"division_id"`
}

// ChallengeConfig overrides a division's default permission set for one
// challenge. The override replaces the default entirely.
type ChallengeConfig struct {
	ChallengeID string     `json:"challenge_id"`
	Permissions Permission `json:"permissions"`
}

// Division is a participation bracket with its own permission defaults.
type Division struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	DefaultPermissions Permission        `json:"default_permissions"`
	ChallengeConfigs   []ChallengeConfig `json:"challenge_configs"`
}

// Challenge carries the scoring parameters of one challenge.
type Challenge struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Category          string  `json:"category"`
	OriginalScore     int     `json:"original_score"`
	MinScoreRate      float64 `json:"min_score_rate"`
	Difficulty        float64 `json:"difficulty"`
	Enabled           bool    `json:"enabled"`
	DisableBloodBonus bool    `json:"disable_blood_bonus"`
}

// Submission is one accepted flag submission. Seq is the insertion sequence
// and breaks timestamp ties, so replaying the log is fully deterministic.
type Submission struct {
	Seq         uint64    `json:"seq"`
	TeamID      string    `json:"team_id"`
	ChallengeID string    `json:"challenge_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// GameConfig is a consistent point-in-time view of one game's configuration.
type GameConfig struct {
	GameID     string      `json:"game_id"`
	Teams      []Team      `json:"teams"`
	Divisions  []Division  `json:"divisions"`
	Challenges []Challenge `json:"challenges"`
}
