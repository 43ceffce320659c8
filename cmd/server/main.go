package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/internal/validators"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/anonto42/nano-social/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize databases")
	}
	defer db.CloseDB()

	postStore := repositories.PostgresPostStore()
	if cfg.PostStore == config.PostStoreMongo {
		postStore = repositories.MongoPostStore(db.MongoDatabase(cfg.MongoDatabase))
	}
	logrus.WithField("store", cfg.PostStore).Info("Post store selected.")

	// Firebase is optional unless it is the auth provider.
	var verifier middleware.TokenVerifier
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize Firebase")
		}
		verifier = firebaseApp.AuthClient
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e)

	err = router.SetupRoutes(e, router.Dependencies{
		Postgres:     db.Postgres,
		PostStore:    postStore,
		Verifier:     verifier,
		AuthProvider: cfg.AuthProvider,
		JWTSecret:    cfg.JWTSecret,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up routes")
	}

	metricsServer := echo.New()
	metricsServer.HideBanner = true
	metricsServer.GET("/metrics", metrics.Handler())
	go func() {
		if err := metricsServer.Start(":" + cfg.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Metrics server stopped")
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown")
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Metrics server shutdown")
	}
	logrus.Info("Server exited.")
}
