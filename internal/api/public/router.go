package public

import (
	"github.com/gin-gonic/gin"
	"github.com/lakectf/gamed/internal/api"
	"github.com/lakectf/gamed/internal/config"
	"github.com/lakectf/gamed/internal/scoreboard"
	"gorm.io/gorm"
)

// NewRouter creates and configures the public Gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, cache *scoreboard.Cache) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db, cache)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/games", h.getAllGames)
		v1.GET("/games/:id", h.getGame)
		v1.GET("/games/:id/scoreboard", h.getScoreboard)
		v1.GET("/games/:id/challenges", h.getChallenges)
		v1.GET("/games/:id/teams/:teamID", h.getTeamScore)

		// Websocket solve feed
		v1.GET("/games/:id/feed", h.handleFeedWs)
	}

	return r
}
