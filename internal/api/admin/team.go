package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lakectf/gamed/internal/database"
	"github.com/lakectf/gamed/internal/database/models"
	"github.com/lakectf/gamed/internal/util"
)

func (h *Handler) createTeam(c *gin.Context) {
	gameID := c.Param("id")
	if _, err := database.GetGame(h.db, gameID); err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
		return
	}

	var req struct {
		Name       string  `json:"name" binding:"required"`
		DivisionID *string `json:"division_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.DivisionID != nil {
		if _, err := database.GetDivision(h.db, *req.DivisionID); err != nil {
			util.Error(c, http.StatusBadRequest, fmt.Errorf("division not found"))
			return
		}
	}

	team := models.Team{
		ID:         uuid.NewString(),
		GameID:     gameID,
		Name:       req.Name,
		DivisionID: req.DivisionID,
	}
	if err := database.CreateTeam(h.db, &team); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(gameID)
	util.Success(c, team, "Team created")
}

func (h *Handler) updateTeam(c *gin.Context) {
	team, err := database.GetTeam(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("team not found"))
		return
	}

	var req struct {
		Name       *string `json:"name"`
		DivisionID *string `json:"division_id"`
		// ClearDivision removes the team from its division; a null
		// division_id alone means "leave unchanged".
		ClearDivision bool `json:"clear_division"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.ClearDivision {
		team.DivisionID = nil
	} else if req.DivisionID != nil {
		if _, err := database.GetDivision(h.db, *req.DivisionID); err != nil {
			util.Error(c, http.StatusBadRequest, fmt.Errorf("division not found"))
			return
		}
		team.DivisionID = req.DivisionID
	}

	if err := database.UpdateTeam(h.db, team); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(team.GameID)
	util.Success(c, team, "Team updated")
}

func (h *Handler) deleteTeam(c *gin.Context) {
	team, err := database.GetTeam(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("team not found"))
		return
	}

	if err := database.DeleteTeam(h.db, team.ID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Invalidate(team.GameID)
	util.Success(c, nil, "Team deleted")
}
