package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"mediguard-backend/config"
	"mediguard-backend/database"
	"mediguard-backend/knowledge"
	"mediguard-backend/routes"
	"mediguard-backend/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	kb, err := knowledge.Load(cfg.Triage.KnowledgeBasePath)
	if err != nil {
		slog.Error("Failed to load knowledge base", "path", cfg.Triage.KnowledgeBasePath, "error", err)
		os.Exit(1)
	}

	// Connect to database
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := database.Connect(connectCtx, cfg)
	cancelConnect()
	if err != nil {
		slog.Error("Failed to connect to session store", "type", cfg.Database.Type, "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Disconnect(ctx); err != nil {
			slog.Warn("Failed to disconnect session store", "error", err)
		}
	}()

	router := routes.NewRouter(routes.Dependencies{
		Config:    cfg,
		Knowledge: kb,
		Store:     store,
		Options:   []services.Option{services.WithLogger(logger)},
	})

	// Log available endpoints
	logAvailableEndpoints(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"store", store.Kind(),
			"disclaimer_required", cfg.Security.RequireDisclaimer,
		)
		slog.Info("Health check", "url", "http://localhost:"+cfg.Port+"/health")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}

// newLogger writes JSON in production and text everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// logAvailableEndpoints logs all registered routes
func logAvailableEndpoints(router *gin.Engine) {
	for _, route := range router.Routes() {
		slog.Debug("Endpoint registered", "method", route.Method, "path", route.Path)
	}
}
