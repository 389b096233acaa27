package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lakectf/gamed/internal/database"
	"github.com/lakectf/gamed/internal/database/models"
	"github.com/lakectf/gamed/internal/util"
	"go.uber.org/zap"
)

func (h *Handler) createChallenge(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := database.GetGame(h.db, gameID); err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
		return
	}

	var req struct {
		Title             string  `json:"title" binding:"required"`
		Category          string  `json:"category"`
		OriginalScore     int     `json:"original_score" binding:"min=0"`
		MinScoreRate      float64 `json:"min_score_rate" binding:"min=0,max=1"`
		Difficulty        float64 `json:"difficulty"`
		Enabled           bool    `json:"enabled"`
		DisableBloodBonus bool    `json:"disable_blood_bonus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	challenge := models.Challenge{
		ID:                uuid.NewString(),
		GameID:            gameID,
		Title:             req.Title,
		Category:          req.Category,
		OriginalScore:     req.OriginalScore,
		MinScoreRate:      req.MinScoreRate,
		Difficulty:        req.Difficulty,
		Enabled:           req.Enabled,
		DisableBloodBonus: req.DisableBloodBonus,
	}
	if err := database.CreateChallenge(h.db, &challenge); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(gameID)
	util.Success(c, challenge, "Challenge created")
}

func (h *Handler) updateChallenge(c *gin.Context) {
	challenge, err := database.GetChallenge(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("challenge not found"))
		return
	}

	var req struct {
		Title             *string  `json:"title"`
		Category          *string  `json:"category"`
		OriginalScore     *int     `json:"original_score"`
		MinScoreRate      *float64 `json:"min_score_rate"`
		Difficulty        *float64 `json:"difficulty"`
		Enabled           *bool    `json:"enabled"`
		DisableBloodBonus *bool    `json:"disable_blood_bonus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Title != nil {
		challenge.Title = *req.Title
	}
	if req.Category != nil {
		challenge.Category = *req.Category
	}
	if req.OriginalScore != nil {
		if *req.OriginalScore < 0 {
			util.Error(c, http.StatusBadRequest, fmt.Errorf("original_score must be >= 0"))
			return
		}
		challenge.OriginalScore = *req.OriginalScore
	}
	if req.MinScoreRate != nil {
		if *req.MinScoreRate < 0 || *req.MinScoreRate > 1 {
			util.Error(c, http.StatusBadRequest, fmt.Errorf("min_score_rate must be within [0, 1]"))
			return
		}
		challenge.MinScoreRate = *req.MinScoreRate
	}
	if req.Difficulty != nil {
		challenge.Difficulty = *req.Difficulty
	}
	if req.Enabled != nil {
		challenge.Enabled = *req.Enabled
	}
	if req.DisableBloodBonus != nil {
		challenge.DisableBloodBonus = *req.DisableBloodBonus
	}

	if err := database.UpdateChallenge(h.db, challenge); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(challenge.GameID)
	util.Success(c, challenge, "Challenge updated")
}

func (h *Handler) deleteChallenge(c *gin.Context) {
	challenge, err := database.GetChallenge(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("challenge not found"))
		return
	}

	if err := database.DeleteChallenge(h.db, challenge.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(challenge.GameID)
	zap.S().Infof("deleted challenge %s and its submissions from game %s", challenge.ID, challenge.GameID)
	util.Success(c, nil, "Challenge deleted")
}

func (h *Handler) enableChallenge(c *gin.Context) {
	h.setChallengeEnabled(c, true)
}

func (h *Handler) disableChallenge(c *gin.Context) {
	h.setChallengeEnabled(c, false)
}

func (h *Handler) setChallengeEnabled(c *gin.Context, enabled bool) {
	challenge, err := database.GetChallenge(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("challenge not found"))
		return
	}

	if err := database.SetChallengeEnabled(h.db, challenge.ID, enabled); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(challenge.GameID)
	if enabled {
		util.Success(c, nil, "Challenge enabled")
	} else {
		util.Success(c, nil, "Challenge disabled")
	}
}
