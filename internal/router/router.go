package router

import (
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/handlers"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies are the resources the routes are built from.
// Verifier may be nil, which disables Firebase sign-in.
type Dependencies struct {
	Postgres     *gorm.DB
	PostStore    repositories.PostStore
	Verifier     middleware.TokenVerifier
	AuthProvider string
	JWTSecret    string
}

// SetupRoutes migrates the schema, builds the services and registers every route.
func SetupRoutes(e *echo.Echo, deps Dependencies) error {
	if err := models.AutoMigrate(deps.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	logrus.Info("PostgreSQL auto-migrations completed for all models.")

	if deps.PostStore == nil {
		deps.PostStore = repositories.PostgresPostStore()
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Services ---
	users := services.NewUserService(deps.Postgres)
	graph := services.NewGraphService(deps.Postgres)
	content := services.NewContentService(deps.Postgres, deps.PostStore)
	feed := services.NewFeedService(deps.Postgres, deps.PostStore)
	notifications := services.NewNotificationService(deps.Postgres)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(users, deps.Verifier, deps.JWTSecret).RegisterAuthRoutes(authGroup)
	logrus.Info("Auth routes configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1")
	switch deps.AuthProvider {
	case config.AuthProviderFirebase:
		if deps.Verifier == nil {
			return fmt.Errorf("firebase auth provider selected without a token verifier")
		}
		api.Use(middleware.FirebaseAuthMiddleware(deps.Verifier, users))
		logrus.Info("Firebase authentication middleware applied to /api/v1 group.")
	default:
		api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))
		logrus.Info("JWT authentication middleware applied to /api/v1 group.")
	}

	handlers.NewUserHandler(users).RegisterProfileRoutes(api)
	handlers.NewFollowHandler(graph).RegisterFollowRoutes(api)
	handlers.NewPostHandler(content).RegisterPostRoutes(api)
	handlers.NewCommentHandler(content).RegisterCommentRoutes(api)
	handlers.NewLikeHandler(content).RegisterLikeRoutes(api)
	handlers.NewSavedPostHandler(content).RegisterSavedPostRoutes(api)
	handlers.NewFeedHandler(feed).RegisterFeedRoutes(api)
	handlers.NewNotificationHandler(notifications).RegisterNotificationRoutes(api)

	logrus.WithField("routes", len(e.Routes())).Info("All routes configured.")
	return nil
}
