package handlers

import (
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns posts by followed users, newest first.
// ?page_size above 100 is clamped rather than rejected.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	page := parsePage(c)

	posts, total, err := h.feed.Build(c.Request().Context(), userID, page)
	if err != nil {
		return respondError(c, err)
	}
	return okPage(c, echo.Map{"posts": posts}, page.Meta(total))
}
