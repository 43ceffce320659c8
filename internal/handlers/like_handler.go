package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler toggles likes on posts and comments.
type LikeHandler struct {
	content *services.ContentService
}

func NewLikeHandler(content *services.ContentService) *LikeHandler {
	return &LikeHandler{content: content}
}

func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.TogglePostLike)
	g.POST("/comments/:id/like", h.ToggleCommentLike)
}

// TogglePostLike answers 201 when a like was created and 200 when removed.
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	res, err := h.content.ToggleLike(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return toggleResponse(c, res)
}

func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.content.ToggleCommentLike(c.Request().Context(), userID, commentID)
	if err != nil {
		return respondError(c, err)
	}
	return toggleResponse(c, res)
}

func toggleResponse(c echo.Context, res models.ToggleResult) error {
	status := http.StatusOK
	if res.Liked {
		status = http.StatusCreated
	}
	return ok(c, status, echo.Map{"status": res.Status()})
}
