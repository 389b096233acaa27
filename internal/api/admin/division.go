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

func (h *Handler) createDivision(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := database.GetGame(h.db, gameID); err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
		return
	}

	var req struct {
		Name               string `json:"name" binding:"required"`
		DefaultPermissions uint32 `json:"default_permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	division := models.Division{
		ID:                 uuid.NewString(),
		GameID:             gameID,
		Name:               req.Name,
		DefaultPermissions: req.DefaultPermissions,
	}
	if err := database.CreateDivision(h.db, &division); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(gameID)
	util.Success(c, division, "Division created")
}

func (h *Handler) updateDivision(c *gin.Context) {
	division, err := database.GetDivision(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("division not found"))
		return
	}

	var req struct {
		Name               *string `json:"name"`
		DefaultPermissions *uint32 `json:"default_permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if req.Name != nil {
		division.Name = *req.Name
	}
	if req.DefaultPermissions != nil {
		division.DefaultPermissions = *req.DefaultPermissions
	}

	if err := database.UpdateDivision(h.db, division); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(division.GameID)
	util.Success(c, division, "Division updated")
}

func (h *Handler) deleteDivision(c *gin.Context) {
	division, err := database.GetDivision(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("division not found"))
		return
	}

	if err := database.DeleteDivision(h.db, division.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(division.GameID)
	zap.S().Infof("deleted division %s from game %s", division.ID, division.GameID)
	util.Success(c, nil, "Division deleted")
}

// upsertChallengeConfig sets a division's per-challenge permission override.
// The override replaces the division default for that challenge entirely.
func (h *Handler) upsertChallengeConfig(c *gin.Context) {
	division, err := database.GetDivision(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("division not found"))
		return
	}
	challenge, err := database.GetChallenge(h.db, c.Param("challengeID"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("challenge not found"))
		return
	}

	var req struct {
		Permissions uint32 `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	cfg := models.DivisionChallengeConfig{
		DivisionID:  division.ID,
		ChallengeID: challenge.ID,
		Permissions: req.Permissions,
	}
	if err := database.UpsertDivisionChallengeConfig(h.db, &cfg); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(division.GameID)
	util.Success(c, cfg, "Challenge permission override set")
}

func (h *Handler) deleteChallengeConfig(c *gin.Context) {
	division, err := database.GetDivision(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("division not found"))
		return
	}

	if err := database.DeleteDivisionChallengeConfig(h.db, division.ID, c.Param("challengeID")); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(division.GameID)
	util.Success(c, nil, "Challenge permission override removed")
}
