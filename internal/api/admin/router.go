package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/lakectf/gamed/internal/api"
	"github.com/lakectf/gamed/internal/config"
	"github.com/lakectf/gamed/internal/scoreboard"
	"gorm.io/gorm"
)

// NewRouter creates and configures the admin Gin engine. Every mutation on
// a game's configuration or submission log ends by invalidating that game's
// cached scoreboard.
func NewRouter(cfg *config.Config, db *gorm.DB, cache *scoreboard.Cache) *gin.Engine {
	r := gin.Default()

	r.Use(api.CORSMiddleware(cfg.CORS))

	h := NewHandler(cfg, db, cache)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/login", h.login)

		authed := v1.Group("/")
		authed.Use(api.AuthMiddleware(cfg.Admin.Token.Secret))
		{
			// Game Management
			games := authed.Group("/games")
			{
				games.GET("", h.getAllGames)
				games.POST("", h.createGame)
				games.GET("/:id", h.getGame)
				games.PUT("/:id", h.updateGame)
				games.DELETE("/:id", h.deleteGame)
				games.POST("/:id/invalidate", h.invalidateGame)

				games.POST("/:id/teams", h.createTeam)
				games.POST("/:id/divisions", h.createDivision)
				games.POST("/:id/challenges", h.createChallenge)

				// Submission ingest (accepted solves only; flag checking
				// happens upstream)
				games.POST("/:id/submissions", h.ingestSubmission)
			}

			// Team Management
			teams := authed.Group("/teams")
			{
				teams.PATCH("/:id", h.updateTeam)
				teams.DELETE("/:id", h.deleteTeam)
			}

			// Division Management
			divisions := authed.Group("/divisions")
			{
				divisions.PUT("/:id", h.updateDivision)
				divisions.DELETE("/:id", h.deleteDivision)
				divisions.PUT("/:id/challenges/:challengeID", h.upsertChallengeConfig)
				divisions.DELETE("/:id/challenges/:challengeID", h.deleteChallengeConfig)
			}

			// Challenge Management
			challenges := authed.Group("/challenges")
			{
				challenges.PUT("/:id", h.updateChallenge)
				challenges.DELETE("/:id", h.deleteChallenge)
				challenges.POST("/:id/enable", h.enableChallenge)
				challenges.POST("/:id/disable", h.disableChallenge)
			}
		}
	}

	return r
}
