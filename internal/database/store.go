package database

import (
	"github.com/lakectf/gamed/internal/database/models"
	"github.com/lakectf/gamed/internal/scoring"
	"gorm.io/gorm"
)

// GameStore adapts the database to the scoreboard cache's read interface.
type GameStore struct {
	db *gorm.DB
}

func NewGameStore(db *gorm.DB) *GameStore {
	return &GameStore{db: db}
}

// LoadGameView reads a game's configuration and submission log inside one
// transaction, so a scoreboard rebuild always sees both from the same
// instant. A mutation landing mid-rebuild can therefore never pair an old
// config with a newer log or vice versa.
func (s *GameStore) LoadGameView(gameID string) (*scoring.GameConfig, []scoring.Submission, error) {
	cfg := &scoring.GameConfig{GameID: gameID}
	var rows []models.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetGame(tx, gameID); err != nil {
			return err
		}

		teams, err := GetTeamsByGame(tx, gameID)
		if err != nil {
			return err
		}
		divisions, err := GetDivisionsByGame(tx, gameID)
		if err != nil {
			return err
		}
		challenges, err := GetChallengesByGame(tx, gameID)
		if err != nil {
			return err
		}
		rows, err = GetSubmissionsByGame(tx, gameID)
		if err != nil {
			return err
		}

		cfg.Teams = make([]scoring.Team, 0, len(teams))
		for _, t := range teams {
			cfg.Teams = append(cfg.Teams, scoring.Team{
				ID:         t.ID,
				Name:       t.Name,
				DivisionID: t.DivisionID,
			})
		}

		cfg.Divisions = make([]scoring.Division, 0, len(divisions))
		for _, d := range divisions {
			div := scoring.Division{
				ID:                 d.ID,
				Name:               d.Name,
				DefaultPermissions: scoring.Permission(d.DefaultPermissions),
				ChallengeConfigs:   make([]scoring.ChallengeConfig, 0, len(d.ChallengeConfigs)),
			}
			for _, cc := range d.ChallengeConfigs {
				div.ChallengeConfigs = append(div.ChallengeConfigs, scoring.ChallengeConfig{
					ChallengeID: cc.ChallengeID,
					Permissions: scoring.Permission(cc.Permissions),
				})
			}
			cfg.Divisions = append(cfg.Divisions, div)
		}

		cfg.Challenges = make([]scoring.Challenge, 0, len(challenges))
		for _, c := range challenges {
			cfg.Challenges = append(cfg.Challenges, scoring.Challenge{
				ID:                c.ID,
				Title:             c.Title,
				Category:          c.Category,
				OriginalScore:     c.OriginalScore,
				MinScoreRate:      c.MinScoreRate,
				Difficulty:        c.Difficulty,
				Enabled:           c.Enabled,
				DisableBloodBonus: c.DisableBloodBonus,
			})
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	subs := make([]scoring.Submission, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, scoring.Submission{
			Seq:         r.Seq,
			TeamID:      r.TeamID,
			ChallengeID: r.ChallengeID,
			SubmittedAt: r.SubmittedAt.UTC(),
		})
	}
	return cfg, subs, nil
}

// GetGameConfig returns only the configuration half of the game view.
func (s *GameStore) GetGameConfig(gameID string) (*scoring.GameConfig, error) {
	cfg, _, err := s.LoadGameView(gameID)
	return cfg, err
}

// ListAcceptedSubmissions returns only the submission log half of the game
// view, ordered chronologically with the insertion sequence breaking ties.
func (s *GameStore) ListAcceptedSubmissions(gameID string) ([]scoring.Submission, error) {
	_, subs, err := s.LoadGameView(gameID)
	return subs, err
}
