// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-event-api/auth"
	"go-event-api/config"
	"go-event-api/db"
	"go-event-api/handler"
	"go-event-api/logger"
	"go-event-api/queue"
	"go-event-api/repository"
	"go-event-api/router"
	"go-event-api/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error applying database migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	cfg := config.AppConfig

	codec := auth.NewTokenCodec(cfg.JWT.SecretKey)
	hasher := auth.NewPasswordHasher(cfg.Bcrypt.Cost)

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	eventRepo := repository.NewEventRepository(database)
	registrationRepo := repository.NewRegistrationRepository(database)

	sessionService := service.NewSessionService(codec, tokenRepo, userRepo,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLDays)*24*time.Hour)
	userService := service.NewUserService(userRepo, hasher, sessionService)
	eventService := service.NewEventService(eventRepo, redisClient)

	var publisher queue.IPublisher
	if cfg.RabbitMQ.Enabled {
		publisher = queue.NewPublisher(cfg.RabbitMQ.URL)
	}
	registrationService := service.NewRegistrationService(database, eventRepo, registrationRepo, publisher)

	authHandler := handler.NewAuthHandler(userService, sessionService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)

	r := router.NewRouter(codec, authHandler, userHandler, eventHandler, registrationHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
