package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alienigenasfc/pelada-system/config"
	"github.com/alienigenasfc/pelada-system/db"
	"github.com/alienigenasfc/pelada-system/handlers"
	"github.com/alienigenasfc/pelada-system/league"
	"github.com/alienigenasfc/pelada-system/repositories"
	api "github.com/alienigenasfc/pelada-system/routes"
	"github.com/alienigenasfc/pelada-system/services"
	"github.com/go-chi/chi/v5"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	client, err := db.Connect(cfg.MongoURI, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	database := client.Database(cfg.MongoDB)

	wsHub := league.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	rosterRepo := repositories.NewMongoRosterRepository(database)
	tournamentRepo := repositories.NewMongoTournamentRepository(database)
	historyRepo := repositories.NewMongoHistoryRepository(database)
	userRepo := repositories.NewMongoUserRepository(database)
	logger.Info("repositories initialized")

	appState := services.NewAppState()
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	if err := services.LoadState(loadCtx, appState, rosterRepo, tournamentRepo, historyRepo); err != nil {
		cancelLoad()
		logger.Error("failed to load state", slog.Any("error", err))
		os.Exit(1)
	}
	cancelLoad()
	logger.Info("state loaded")

	persisterCtx, cancelPersister := context.WithCancel(context.Background())
	defer cancelPersister()
	persister := services.NewAsyncPersister(logger)
	go persister.Run(persisterCtx)
	logger.Info("persister started")

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, logger)
	rosterService := services.NewRosterService(appState, rosterRepo, persister, wsHub)
	tournamentService := services.NewTournamentService(appState, tournamentRepo, historyRepo, persister, wsHub, logger)
	matchService := services.NewMatchService(appState, tournamentRepo, historyRepo, persister, wsHub, logger)
	statsService := services.NewStatsService(appState)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	playerHandler := handlers.NewPlayerHandler(rosterService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	statsHandler := handlers.NewStatsHandler(statsService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		userHandler,
		playerHandler,
		tournamentHandler,
		matchHandler,
		statsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
