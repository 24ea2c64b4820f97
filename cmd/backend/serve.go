package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hairizuan-noorazman/testcase-service/cmd/backend/handlers"
	"github.com/hairizuan-noorazman/testcase-service/database"
	"github.com/hairizuan-noorazman/testcase-service/logger"
	"github.com/hairizuan-noorazman/testcase-service/testcase"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level, cfg.Log.Format)
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	db, err := database.Connect(cfg.Database.ConnectionConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	log.Info(ctx, "database connected", map[string]interface{}{
		"driver":   cfg.Database.Driver,
		"host":     cfg.Database.Host,
		"database": cfg.Database.Database,
	})

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(sqlDB, cfg.Database.Driver, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info(ctx, "migrations applied", map[string]interface{}{
			"path": cfg.Database.MigrationsPath,
		})
	}

	store := testcase.NewMySQLStore(db, log)
	service := testcase.NewService(store, log, testcase.ServiceConfig{
		DefaultPageSize:   cfg.API.DefaultPageSize,
		MaxPageSize:       cfg.API.MaxPageSize,
		EmptyListNotFound: cfg.API.EmptyListNotFound,
	})

	router := handlers.NewRouter(service, sqlDB, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error(ctx, "server error", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	case <-quit:
	}

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
