package models

import (
	"time"

	"gorm.io/gorm"
)

type Game struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type Team struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	GameID     string  `gorm:"index" json:"game_id"`
	Name       string  `json:"name"`
	DivisionID *string `gorm:"index" json:"division_id"`
}

type Division struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	GameID             string `gorm:"index" json:"game_id"`
	Name               string `json:"name"`
	DefaultPermissions uint32 `json:"default_permissions"`

	ChallengeConfigs []DivisionChallengeConfig `gorm:"foreignKey:DivisionID;constraint:OnDelete:CASCADE" json:"challenge_configs"`
}

// DivisionChallengeConfig replaces a division's default permission set for
// one challenge. There is at most one row per (division, challenge) pair.
type DivisionChallengeConfig struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	DivisionID  string `gorm:"uniqueIndex:idx_division_challenge" json:"division_id"`
	ChallengeID string `gorm:"uniqueIndex:idx_division_challenge" json:"challenge_id"`
	Permissions uint32 `json:"permissions"`
}

type Challenge struct {
	ID        string `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time

	GameID            string  `gorm:"index" json:"game_id"`
	Title             string  `json:"title"`
	Category          string  `json:"category"`
	OriginalScore     int     `json:"original_score"`
	MinScoreRate      float64 `json:"min_score_rate"`
	Difficulty        float64 `json:"difficulty"`
	Enabled           bool    `json:"enabled"`
	DisableBloodBonus bool    `json:"disable_blood_bonus"`
}

// Submission is one accepted flag submission. The table is append-only; Seq
// doubles as the stable tie-break for equal timestamps.
type Submission struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement" json:"seq"`
	CreatedAt time.Time

	GameID      string    `gorm:"index" json:"game_id"`
	TeamID      string    `gorm:"index" json:"team_id"`
	ChallengeID string    `gorm:"index" json:"challenge_id"`
	SubmittedAt time.Time `gorm:"index" json:"submitted_at"`
}
