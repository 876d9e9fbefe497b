package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/who-owns-this/internal/config"
	"github.com/yukikurage/who-owns-this/internal/database"
	"github.com/yukikurage/who-owns-this/internal/middleware"
	"github.com/yukikurage/who-owns-this/internal/router"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Who Owns This? team task tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run migrations and start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the database schema and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, db, err := bootstrap()
				if err != nil {
					return err
				}
				defer closeDB(db)

				logrus.Info("Migrations applied")
				return nil
			},
		},
	)
	return cmd
}

// bootstrap loads configuration, sets up logging and opens a migrated
// database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogging(cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return cfg, db, nil
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	gin.SetMode(cfg.GinMode)

	store, err := middleware.NewSessionStore(middleware.SessionOptions{
		Secret:    cfg.SessionSecret,
		RedisAddr: cfg.RedisAddr(),
		Secure:    cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	r, err := router.Setup(router.Deps{
		DB:             db,
		SessionStore:   store,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
			"db_driver":   cfg.DBDriver,
		}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logrus.Info("Server stopped")
	return nil
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logrus.WithError(err).Error("Failed to close database")
		return
	}
	logrus.Info("Database connection closed")
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}
