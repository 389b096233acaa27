package admin

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lakectf/gamed/internal/database"
	"github.com/lakectf/gamed/internal/database/models"
	"github.com/lakectf/gamed/internal/pubsub"
	"github.com/lakectf/gamed/internal/util"
	"go.uber.org/zap"
)

// ingestSubmission records one accepted flag submission. The caller has
// already validated the flag; this endpoint only appends to the log, flips
// the game's invalidation flag and publishes the solve feed event. It never
// waits for a scoreboard rebuild.
func (h *Handler) ingestSubmission(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := database.GetGame(h.db, gameID); err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
		return
	}

	var req struct {
		TeamID      string     `json:"team_id" binding:"required"`
		ChallengeID string     `json:"challenge_id" binding:"required"`
		SubmittedAt *time.Time `json:"submitted_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	team, err := database.GetTeam(h.db, req.TeamID)
	if err != nil || team.GameID != gameID {
		util.Error(c, http.StatusBadRequest, fmt.Errorf("team not found in this game"))
		return
	}
	challenge, err := database.GetChallenge(h.db, req.ChallengeID)
	if err != nil || challenge.GameID != gameID {
		util.Error(c, http.StatusBadRequest, fmt.Errorf("challenge not found in this game"))
		return
	}

	sub := models.Submission{
		GameID:      gameID,
		TeamID:      req.TeamID,
		ChallengeID: req.ChallengeID,
	}
	if req.SubmittedAt != nil {
		sub.SubmittedAt = req.SubmittedAt.UTC()
	}
	if err := database.AppendSubmission(h.db, &sub); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(gameID)
	h.broker.PublishSolve(pubsub.SolveEvent{
		GameID:         gameID,
		TeamID:         team.ID,
		TeamName:       team.Name,
		ChallengeID:    challenge.ID,
		ChallengeTitle: challenge.Title,
		SubmittedAt:    sub.SubmittedAt,
	})

	zap.S().Infof("game %s: recorded solve of %s by team %s", gameID, challenge.ID, team.ID)
	util.Success(c, sub, "Submission recorded")
}
