package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/clubhousefc/backend/pkg/storage"
	"github.com/labstack/echo/v4"
)

// MediaHandler serves stored images back by key
type MediaHandler struct {
	images storage.Backend
}

func NewMediaHandler(images storage.Backend) *MediaHandler {
	return &MediaHandler{images: images}
}

func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo) {
	e.GET("/media/*", h.Get)
}

func (h *MediaHandler) Get(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" || strings.Contains(key, "..") {
		return apperr.NotFound("image not found")
	}
	obj, err := h.images.Open(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("image not found")
		}
		return apperr.Internal("media.open", err)
	}
	defer obj.Body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, obj.Body)
}
