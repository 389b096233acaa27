package database

import (
	"time"

	"github.com/lakectf/gamed/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Game CRUD
func CreateGame(db *gorm.DB, game *models.Game) error {
	return db.Create(game).Error
}

func GetGame(db *gorm.DB, id string) (*models.Game, error) {
	var game models.Game
	if err := db.Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func GetAllGames(db *gorm.DB) ([]models.Game, error) {
	var games []models.Game
	if err := db.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func UpdateGame(db *gorm.DB, game *models.Game) error {
	return db.Save(game).Error
}

func DeleteGame(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var divisionIDs []string
		if err := tx.Model(&models.Division{}).Where("game_id = ?", id).Pluck("id", &divisionIDs).Error; err != nil {
			return err
		}
		if len(divisionIDs) > 0 {
			if err := tx.Where("division_id IN ?", divisionIDs).Delete(&models.DivisionChallengeConfig{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Challenge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Team{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&models.Division{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, "id = ?", id).Error
	})
}

// Team CRUD
func CreateTeam(db *gorm.DB, team *models.Team) error {
	return db.Create(team).Error
}

func GetTeam(db *gorm.DB, id string) (*models.Team, error) {
	var team models.Team
	if err := db.Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func GetTeamsByGame(db *gorm.DB, gameID string) ([]models.Team, error) {
	var teams []models.Team
	if err := db.Where("game_id = ?", gameID).Order("id asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func UpdateTeam(db *gorm.DB, team *models.Team) error {
	return db.Save(team).Error
}

func DeleteTeam(db *gorm.DB, id string) error {
	return db.Delete(&models.Team{}, "id = ?", id).Error
}

// Division CRUD
func CreateDivision(db *gorm.DB, division *models.Division) error {
	return db.Create(division).Error
}

func GetDivision(db *gorm.DB, id string) (*models.Division, error) {
	var division models.Division
	if err := db.Preload("ChallengeConfigs").Where("id = ?", id).First(&division).Error; err != nil {
		return nil, err
	}
	return &division, nil
}

func GetDivisionsByGame(db *gorm.DB, gameID string) ([]models.Division, error) {
	var divisions []models.Division
	if err := db.Preload("ChallengeConfigs").Where("game_id = ?", gameID).Order("id asc").Find(&divisions).Error; err != nil {
		return nil, err
	}
	return divisions, nil
}

func UpdateDivision(db *gorm.DB, division *models.Division) error {
	return db.Save(division).Error
}

func DeleteDivision(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("division_id = ?", id).Delete(&models.DivisionChallengeConfig{}).Error; err != nil {
			return err
		}
		// Teams keep existing without a division once theirs is removed.
		if err := tx.Model(&models.Team{}).Where("division_id = ?", id).Update("division_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Division{}, "id = ?", id).Error
	})
}

// UpsertDivisionChallengeConfig sets the whole-set permission override for a
// (division, challenge) pair, replacing any previous override.
func UpsertDivisionChallengeConfig(db *gorm.DB, cfg *models.DivisionChallengeConfig) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "division_id"}, {Name: "challenge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permissions", "updated_at"}),
	}).Create(cfg).Error
}

func DeleteDivisionChallengeConfig(db *gorm.DB, divisionID, challengeID string) error {
	return db.Where("division_id = ? AND challenge_id = ?", divisionID, challengeID).
		Delete(&models.DivisionChallengeConfig{}).Error
}

// Challenge CRUD
func CreateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	return db.Create(challenge).Error
}

func GetChallenge(db *gorm.DB, id string) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := db.Where("id = ?", id).First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func GetChallengesByGame(db *gorm.DB, gameID string) ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := db.Where("game_id = ?", gameID).Order("id asc").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func UpdateChallenge(db *gorm.DB, challenge *models.Challenge) error {
	return db.Save(challenge).Error
}

func SetChallengeEnabled(db *gorm.DB, id string, enabled bool) error {
	return db.Model(&models.Challenge{}).Where("id = ?", id).Update("enabled", enabled).Error
}

func DeleteChallenge(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("challenge_id = ?", id).Delete(&models.DivisionChallengeConfig{}).Error; err != nil {
			return err
		}
		// Removing the challenge drops its submissions from the replay set,
		// so the next rebuild no longer scores them.
		if err := tx.Where("challenge_id = ?", id).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Challenge{}, "id = ?", id).Error
	})
}

// Submission log
func AppendSubmission(db *gorm.DB, sub *models.Submission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	} else {
		sub.SubmittedAt = sub.SubmittedAt.UTC()
	}
	return db.Create(sub).Error
}

func GetSubmissionsByGame(db *gorm.DB, gameID string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := db.Where("game_id = ?", gameID).Order("submitted_at asc, seq asc").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
