package handlers

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mapkadev/mapka/models"
)

// UploadImage stores a multipart upload under a random name in the media
// directory, records it against the club and returns its relative URL.
func (h *Handler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	club, err := h.findClub(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext

	if err := os.MkdirAll(h.cfg.MediaDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	dst, err := os.Create(filepath.Join(h.cfg.MediaDir, name))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	url := "/media/" + name
	image := &models.Image{
		ID:     uuid.New(),
		ClubID: club.ID,
		URL:    url,
	}
	if _, err := h.db.NewInsert().Model(image).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
