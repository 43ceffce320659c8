package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	users     *services.UserService
	verifier  middleware.TokenVerifier
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler. verifier may be nil, in which
// case Firebase login is not offered.
func NewAuthHandler(users *services.UserService, verifier middleware.TokenVerifier, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		users:     users,
		verifier:  verifier,
		jwtSecret: jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/signin", h.SignIn)
	if h.verifier != nil {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
}

// Register handles local user registration with username, email and password
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusCreated, user)
}

// SignIn accepts a username or email together with the password.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

// FirebaseLogin handles Firebase ID token verification and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	token, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		logrus.WithError(err).Warn("firebase token rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	email, name := middleware.FirebaseIdentity(token)
	user, err := h.users.LinkFirebaseUser(ctx, token.UID, email, name)
	if err != nil {
		return respondError(c, err)
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user *models.User) error {
	token, err := middleware.IssueToken(h.jwtSecret, user)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, status, echo.Map{"token": token, "user": user})
}
