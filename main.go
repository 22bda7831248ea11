package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/newsfeed-be/internal/api"
	"github.com/isdelr/newsfeed-be/internal/auth"
	"github.com/isdelr/newsfeed-be/internal/cache"
	"github.com/isdelr/newsfeed-be/internal/config"
	"github.com/isdelr/newsfeed-be/internal/database"
	"github.com/isdelr/newsfeed-be/internal/gnews"
	"github.com/isdelr/newsfeed-be/internal/logger"
	"github.com/isdelr/newsfeed-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration; every value is required at startup
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up collaborators
	tokens := auth.NewTokenService(cfg.JWTSecret)
	feedCache := cache.NewMemory()
	newsProvider := gnews.NewClient(cfg.GNewsAPIKey)

	// Set up services
	userService := services.NewUserService(db)
	feedService := services.NewFeedService(userService, newsProvider, feedCache)

	// Set up router
	router := api.NewRouter(tokens, userService, feedService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
