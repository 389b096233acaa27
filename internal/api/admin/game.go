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

func (h *Handler) createGame(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Summary string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	game := models.Game{
		ID:      uuid.NewString(),
		Title:   req.Title,
		Summary: req.Summary,
	}
	if err := database.CreateGame(h.db, &game); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	zap.S().Infof("created game %s (%s)", game.ID, game.Title)
	util.Success(c, game, "Game created")
}

func (h *Handler) updateGame(c *gin.Context) {
	game, err := database.GetGame(h.db, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusNotFound, fmt.Errorf("game not found"))
		return
	}

	var req struct {
		Title   *string `json:"title"`
		Summary *string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}
	if req.Title != nil {
		game.Title = *req.Title
	}
	if req.Summary != nil {
		game.Summary = *req.Summary
	}

	if err := database.UpdateGame(h.db, game); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}
	util.Success(c, game, "Game updated")
}

func (h *Handler) deleteGame(c *gin.Context) {
	gameID := c.Param("id")
	if err := database.DeleteGame(h.db, gameID); err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	h.cache.Forget(gameID)
	h.broker.CloseGame(gameID)
	zap.S().Infof("deleted game %s", gameID)
	util.Success(c, nil, "Game deleted")
}

// invalidateGame lets an operator force the next scoreboard read to rebuild.
func (h *Handler) invalidateGame(c *gin.Context) {
	h.cache.Invalidate(c.Param("id"))
	util.Success(c, nil, "Scoreboard invalidated")
}
