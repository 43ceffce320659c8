package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles bookmarks.
type SavedPostHandler struct {
	content *services.ContentService
}

func NewSavedPostHandler(content *services.ContentService) *SavedPostHandler {
	return &SavedPostHandler{content: content}
}

func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.ToggleSave)
	g.GET("/saved", h.GetSavedPosts)
}

func (h *SavedPostHandler) ToggleSave(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	saved, err := h.content.ToggleSave(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, echo.Map{"saved": saved})
}

func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	page := parsePage(c)
	posts, total, err := h.content.ListSaved(c.Request().Context(), userID, page)
	if err != nil {
		return respondError(c, err)
	}
	return okPage(c, echo.Map{"posts": posts}, page.Meta(total))
}
