package public

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lakectf/gamed/internal/database"
	"github.com/lakectf/gamed/internal/util"
)

func (h *Handler) getAllGames(c *gin.Context) {
	games, err := database.GetAllGames(h.db)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, games, "Games retrieved")
}

func (h *Handler) getGame(c *gin.Context) {
	game, err := database.GetGame(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
		return
	}
	util.Success(c, game, "Game found")
}

func (h *Handler) getScoreboard(c *gin.Context) {
	snap, err := h.cache.GetSnapshot(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
			return
		}
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, snap, "Scoreboard retrieved")
}

func (h *Handler) getChallenges(c *gin.Context) {
	snap, err := h.cache.GetSnapshot(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
			return
		}
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, snap.Challenges, "Challenges retrieved")
}

func (h *Handler) getTeamScore(c *gin.Context) {
	snap, err := h.cache.GetSnapshot(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
			return
		}
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	team := snap.Team(c.Param("teamID"))
	if team == nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("team not found"))
		return
	}
	util.Success(c, team, "Team score retrieved")
}
