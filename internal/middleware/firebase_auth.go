package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// TokenVerifier is the subset of *auth.Client the middleware needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseUserResolver maps a verified Firebase identity to a local user.
type FirebaseUserResolver interface {
	LinkFirebaseUser(ctx context.Context, uid, email, name string) (*models.User, error)
}

// FirebaseAuthMiddleware verifies Firebase ID tokens and stores the same
// claims JWTAuthMiddleware would for the linked local user.
func FirebaseAuthMiddleware(verifier TokenVerifier, users FirebaseUserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			email, name := FirebaseIdentity(token)
			user, err := users.LinkFirebaseUser(ctx, token.UID, email, name)
			if err != nil {
				logrus.WithError(err).WithField("uid", token.UID).Error("resolving firebase user")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unable to resolve user")
			}

			c.Set(ClaimsKey, &models.JwtCustomClaims{UserID: user.ID, Email: user.Email})
			c.Set("firebaseUID", token.UID)
			return next(c)
		}
	}
}

// FirebaseIdentity reads the optional email and display name claims.
func FirebaseIdentity(token *auth.Token) (email, name string) {
	if v, ok := token.Claims["email"].(string); ok {
		email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		name = v
	}
	return email, name
}
