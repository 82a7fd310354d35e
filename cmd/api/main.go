package main

import (
	"log"

	"go.uber.org/zap"

	"pulsevo/internal/cache"
	"pulsevo/internal/config"
	"pulsevo/internal/handler"
	"pulsevo/internal/httpserver"
	"pulsevo/internal/repository"
	"pulsevo/internal/service/insight"
	"pulsevo/pkg/db"
	"pulsevo/pkg/logger"
	"pulsevo/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis (cache only, degraded mode without it)
	rdb, err := redis.NewClient(cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, insight caching disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}
	insightCache := cache.New(rdb, logger)

	// Init Repositories
	taskRepo := repository.NewTaskRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)

	// Init insight layer
	gemini := insight.NewGeminiClient(cfg.AI)
	if gemini == nil {
		logger.Info("Gemini not configured, serving template narratives")
	}
	narrator := insight.NewNarrator(gemini, logger)
	panels := insight.NewPlaceholderPanels()

	// Init Handlers
	dashboardHandler := handler.NewDashboardHandler(taskRepo, userRepo, logger)
	taskHandler := handler.NewTaskHandler(taskRepo, logger)
	userHandler := handler.NewUserHandler(userRepo, taskRepo, logger)
	insightHandler := handler.NewInsightHandler(taskRepo, narrator, panels, insightCache, logger)
	chatHandler := handler.NewChatHandler(taskRepo, userRepo, narrator, logger)
	settingsHandler := handler.NewSettingsHandler(insightCache, logger)

	// Router
	router := httpserver.NewRouter(
		dashboardHandler,
		taskHandler,
		userHandler,
		insightHandler,
		chatHandler,
		settingsHandler,
		cfg.JWT.Secret,
		cfg.JWT.Audience,
		dbConn,
	)

	// Start API server
	logger.Info("Starting PulseVo API", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
