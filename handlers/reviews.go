package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mapkadev/mapka/models"
)

type reviewCreateRequest struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
}

// CreateReview appends a review to a club. Ratings outside 1–5 are rejected.
func (h *Handler) CreateReview(c echo.Context) error {
	var req reviewCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	ctx := c.Request().Context()
	club, err := h.findClub(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	review := &models.Review{
		ID:         uuid.New(),
		ClubID:     club.ID,
		AuthorName: strings.TrimSpace(req.AuthorName),
		Rating:     req.Rating,
		Text:       req.Text,
	}
	if _, err := h.db.NewInsert().Model(review).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, review)
}

// ListReviews returns a club's reviews, newest first.
func (h *Handler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()
	club, err := h.findClub(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var reviews []*models.Review
	err = h.db.NewSelect().Model(&reviews).
		Where("club_id = ?", club.ID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reviews)
}
