package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"albumify/internal/errors"
	"albumify/internal/service"
)

// AlbumHandler handles album endpoints.
type AlbumHandler struct {
	albumService service.AlbumService
}

// NewAlbumHandler creates a new album handler.
func NewAlbumHandler(albumService service.AlbumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

// AlbumRequest carries an album name for create and rename.
type AlbumRequest struct {
	Name string `json:"name" validate:"required"`
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid ID")
	}
	return uint(id), nil
}

// ListByUser godoc
// @Summary List a user's albums
// @Tags albums
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {array} model.Album
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/albums [get]
func (h *AlbumHandler) ListByUser(c echo.Context) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	albums, err := h.albumService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, albums)
}

// Get godoc
// @Summary Get an album by ID
// @Tags albums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Success 200 {object} model.Album
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id} [get]
func (h *AlbumHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	album, err := h.albumService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, album)
}

// Create godoc
// @Summary Create an album for a user
// @Tags albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body AlbumRequest true "Album name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/albums [post]
func (h *AlbumHandler) Create(c echo.Context) error {
	userID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req AlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	album, err := h.albumService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"album":   album,
		"message": "album added successfully",
	})
}

// Update godoc
// @Summary Rename an album
// @Tags albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Param request body AlbumRequest true "New album name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id} [put]
func (h *AlbumHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req AlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	album, err := h.albumService.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"album":   album,
		"message": "album updated successfully",
	})
}

// Delete godoc
// @Summary Delete an album
// @Tags albums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /albums/{id} [delete]
func (h *AlbumHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.albumService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "album deleted successfully",
	})
}
