package app

import (
	"fmt"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/handlers"
	"reviewhub/internal/logger"
	"reviewhub/internal/middleware"
	"reviewhub/internal/repositories"
	"reviewhub/internal/routes"
	"reviewhub/internal/services"
	"reviewhub/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices()
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices() *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	companyRepo := repositories.NewCompanyRepository()
	reviewRepo := repositories.NewReviewRepository()
	statsRepo := repositories.NewStatsRepository()

	guard := services.NewAccessGuard(companyRepo)
	directoryService := services.NewDirectoryService(companyRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, companyRepo, guard)
	statsService := services.NewStatsService(statsRepo, guard)

	return &services.ServiceContainer{
		DirectoryService: directoryService,
		ReviewService:    reviewService,
		StatsService:     statsService,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		CompanyHandler:  handlers.NewCompanyHandler(baseHandler, container.DirectoryService, container.ReviewService),
		ReviewHandler:   handlers.NewReviewHandler(baseHandler, container.ReviewService),
		FeedbackHandler: handlers.NewFeedbackHandler(baseHandler, container.ReviewService),
		StatsHandler:    handlers.NewStatsHandler(baseHandler, container.StatsService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
