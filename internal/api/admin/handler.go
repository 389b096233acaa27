package admin

import (
	"github.com/lakectf/gamed/internal/config"
	"github.com/lakectf/gamed/internal/pubsub"
	"github.com/lakectf/gamed/internal/scoreboard"
	"gorm.io/gorm"
)

// Handler holds all dependencies for the admin API handlers.
type Handler struct {
	cfg    *config.Config
	db     *gorm.DB
	cache  *scoreboard.Cache
	broker *pubsub.Broker
}

// NewHandler creates a new admin handler with its dependencies.
func NewHandler(cfg *config.Config, db *gorm.DB, cache *scoreboard.Cache) *Handler {
	return &Handler{
		cfg:    cfg,
		db:     db,
		cache:  cache,
		broker: pubsub.GetBroker(),
	}
}
