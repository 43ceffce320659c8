package handlers

import (
	"net/http"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post CRUD and search.
type PostHandler struct {
	content *services.ContentService
}

func NewPostHandler(content *services.ContentService) *PostHandler {
	return &PostHandler{content: content}
}

func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post authored by the caller.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := h.content.CreatePost(c.Request().Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.content.GetPost(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, post)
}

// GetPosts lists posts newest first; ?search= filters by title, content
// or author username.
func (h *PostHandler) GetPosts(c echo.Context) error {
	page := parsePage(c)
	search := c.QueryParam("search")
	if search == "" {
		search = c.QueryParam("q")
	}

	posts, total, err := h.content.ListPosts(c.Request().Context(), getUserIDFromContext(c), search, page)
	if err != nil {
		return respondError(c, err)
	}
	return okPage(c, echo.Map{"posts": posts}, page.Meta(total))
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := h.content.UpdatePost(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.content.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
