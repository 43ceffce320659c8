package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graph *services.GraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.GraphService) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := currentUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.graph.Follow(c.Request().Context(), currentUserID, targetID); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, echo.Map{"following": true, "user_id": targetID})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := currentUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.graph.Unfollow(c.Request().Context(), currentUserID, targetID); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"following": false, "user_id": targetID})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.listUsers(c, h.graph.ListFollowers)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.listUsers(c, h.graph.ListFollowing)
}

func (h *FollowHandler) listUsers(c echo.Context, list func(ctx context.Context, id uint) ([]models.User, error)) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	users, err := list(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	compact := make([]models.UserCompact, 0, len(users))
	for i := range users {
		compact = append(compact, users[i].ToCompact())
	}
	return ok(c, http.StatusOK, compact)
}
