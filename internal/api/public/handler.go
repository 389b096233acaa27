package public

import (
	"github.com/lakectf/gamed/internal/config"
	"github.com/lakectf/gamed/internal/scoreboard"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the public API handlers.
type Handler struct {
	cfg   *config.Config
	db    *gorm.DB
	cache *scoreboard.Cache
}

// NewHandler creates a new public handler with its dependencies.
func NewHandler(cfg *config.Config, db *gorm.DB, cache *scoreboard.Cache) *Handler {
	return &Handler{
		cfg:   cfg,
		db:    db,
		cache: cache,
	}
}
