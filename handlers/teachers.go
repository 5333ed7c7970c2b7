package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mapkadev/mapka/models"
)

type teacherCreateRequest struct {
	Name     string  `json:"name"`
	Bio      *string `json:"bio"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	PhotoURL *string `json:"photo_url"`
}

// ListTeachers returns all teachers ordered by name.
func (h *Handler) ListTeachers(c echo.Context) error {
	var teachers []*models.Teacher
	err := h.db.NewSelect().Model(&teachers).
		OrderExpr("t.name ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, teachers)
}

// CreateTeacher inserts a teacher profile.
func (h *Handler) CreateTeacher(c echo.Context) error {
	var req teacherCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	teacher := &models.Teacher{
		ID:       uuid.New(),
		Name:     req.Name,
		Bio:      req.Bio,
		Phone:    req.Phone,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	}
	if _, err := h.db.NewInsert().Model(teacher).Exec(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, teacher)
}
