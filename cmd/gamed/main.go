package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lakectf/gamed/internal/api/admin"
	"github.com/lakectf/gamed/internal/api/public"
	"github.com/lakectf/gamed/internal/config"
	"github.com/lakectf/gamed/internal/database"
	"github.com/lakectf/gamed/internal/scoreboard"
	"github.com/lakectf/gamed/internal/scoring"

	"go.uber.org/zap"
)

var Version = "dev-build"

func main() {

	fmt.Fprintf(os.Stderr, "gamed %s - Competitive Scoring Engine\n\n", Version)

	// config
	var configPath string
	flag.StringVar(&configPath, "c", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// logger
	var logger *zap.Logger
	if cfg.Logger.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// database
	db, err := database.Init(cfg.Storage.Database)
	if err != nil {
		zap.S().Fatalf("failed to initialize database: %v", err)
	}
	zap.S().Info("database initialized successfully")

	// scoring pipeline and snapshot cache
	aggregator := scoring.NewAggregator(scoring.DecayCalculator{}, scoring.BloodFactors{
		First:  cfg.Scoring.FirstBloodFactor,
		Second: cfg.Scoring.SecondBloodFactor,
		Third:  cfg.Scoring.ThirdBloodFactor,
	})
	cache := scoreboard.NewCache(database.NewGameStore(db), aggregator)

	// API routers
	publicEngine := public.NewRouter(cfg, db, cache)
	adminEngine := admin.NewRouter(cfg, db, cache)

	// start servers
	go func() {
		zap.S().Infof("starting public server at %s", cfg.Listen)
		if err := publicEngine.Run(cfg.Listen); err != nil {
			zap.S().Fatalf("failed to start public server: %v", err)
		}
	}()

	if cfg.Admin.Enabled {
		go func() {
			zap.S().Infof("starting admin server at %s", cfg.Admin.Listen)
			if err := adminEngine.Run(cfg.Admin.Listen); err != nil {
				zap.S().Fatalf("failed to start admin server: %v", err)
			}
		}()
	}

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server...")
}
