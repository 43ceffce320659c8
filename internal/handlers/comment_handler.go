package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comments on posts.
type CommentHandler struct {
	content *services.ContentService
}

func NewCommentHandler(content *services.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// GetComments lists a post's comments, oldest first.
func (h *CommentHandler) GetComments(c echo.Context) error {
	page := parsePage(c)
	comments, total, err := h.content.ListComments(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return okPage(c, echo.Map{"comments": comments}, page.Meta(total))
}

// CreateComment comments on a post and notifies its author.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	comment, err := h.content.CreateComment(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req models.CommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	comment, err := h.content.UpdateComment(c.Request().Context(), userID, commentID, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.content.DeleteComment(c.Request().Context(), userID, commentID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
