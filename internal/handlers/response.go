package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/nano-social/backend/internal/errs"
	"github.com/anonto42/nano-social/backend/internal/middleware"
	"github.com/anonto42/nano-social/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func getUserIDFromContext(c echo.Context) uint {
	return middleware.UserIDFromContext(c)
}

// currentUser returns the authenticated user id or a 401.
func currentUser(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.Validation, errs.SelfFollow:
		return http.StatusBadRequest
	case errs.Permission:
		return http.StatusForbidden
	case errs.NotFound:
		return http.StatusNotFound
	case errs.AlreadyFollowing, errs.NotFollowing:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError turns a service error into an HTTP error with the standard
// failure envelope. Errors outside the taxonomy are logged and hidden.
func respondError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusFor(kind)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).Error("request failed")
	}
	return echo.NewHTTPError(status, echo.Map{
		"success": false,
		"error": echo.Map{
			"kind":    kind,
			"message": errs.Message(err),
		},
	})
}

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

func okPage(c echo.Context, data interface{}, meta services.PageMeta) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data, "meta": meta})
}

// bindAndValidate binds the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errs.Errorf(errs.Validation, "invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errs.Errorf(errs.Validation, "invalid %s", name)
	}
	return uint(id), nil
}

// parsePage reads page and page_size; malformed values count as absent.
func parsePage(c echo.Context) services.Page {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return services.NewPage(page, size)
}
