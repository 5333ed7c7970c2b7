package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	mw "github.com/mapkadev/mapka/middleware"
	"github.com/mapkadev/mapka/models"
)

// postPayload is the create/update body for a blog post, with the same
// present-key partial-update semantics as clubs.
type postPayload struct {
	Title      Field[string] `json:"title"`
	Slug       Field[string] `json:"slug"`
	Content    Field[string] `json:"content"`
	Excerpt    Field[string] `json:"excerpt"`
	CoverImage Field[string] `json:"coverImage"`
	Status     Field[string] `json:"status"`
}

// ListPosts returns blog posts. The public sees published posts only;
// an authenticated staff session may pass ?all=1 to include drafts.
func (h *Handler) ListPosts(c echo.Context) error {
	limit, offset := pagination(c)

	var posts []*models.BlogPost
	q := h.db.NewSelect().Model(&posts).
		OrderExpr("bp.created_at DESC").
		Limit(limit).
		Offset(offset)
	if !h.staffSession(c) || c.QueryParam("all") == "" {
		q = q.Where("bp.status = ?", models.StatusPublished)
	}
	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost returns one post by id or slug. Drafts 404 for the public.
func (h *Handler) GetPost(c echo.Context) error {
	post, err := h.findPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.Status != models.StatusPublished && !h.staffSession(c) {
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost inserts a post, auto-resolving slug collisions by suffixing.
func (h *Handler) CreatePost(c echo.Context) error {
	var p postPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	title := p.Title.str()
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	ctx := c.Request().Context()

	base := p.Slug.str()
	if base == "" {
		base = uuid.NewString()[:8]
	}
	slug, err := uniqueSlug(base, func(s string) (bool, error) {
		return h.db.NewSelect().Model((*models.BlogPost)(nil)).
			Where("slug = ?", s).
			Exists(ctx)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	status := p.Status.str()
	if status != models.StatusPublished {
		status = models.StatusDraft
	}

	post := &models.BlogPost{
		ID:        uuid.New(),
		Title:     title,
		Slug:      slug,
		Content:   p.Content.str(),
		Excerpt:   p.Excerpt.str(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	post.SetStatus(status, time.Now())
	if img := p.CoverImage.str(); img != "" {
		post.CoverImageURL = &img
	}

	if _, err := h.db.NewInsert().Model(post).Exec(ctx); err != nil {
		if isDuplicateKey(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "slug already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// UpdatePost applies a partial update to a post.
func (h *Handler) UpdatePost(c echo.Context) error {
	var p postPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	post, err := h.findPost(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if p.Title.Set {
		if t := p.Title.str(); t != "" {
			post.Title = t
		}
	}
	if p.Slug.Set {
		if s := p.Slug.str(); s != "" {
			post.Slug = s
		}
	}
	if p.Content.Set {
		post.Content = p.Content.str()
	}
	if p.Excerpt.Set {
		post.Excerpt = p.Excerpt.str()
	}
	if p.CoverImage.Set {
		if img := p.CoverImage.str(); img != "" {
			post.CoverImageURL = &img
		} else {
			post.CoverImageURL = nil
		}
	}
	if p.Status.Set {
		switch s := p.Status.str(); s {
		case models.StatusDraft, models.StatusPublished:
			post.SetStatus(s, time.Now())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "status must be draft or published")
		}
	}
	post.UpdatedAt = time.Now()

	if _, err := h.db.NewUpdate().Model(post).WherePK().Exec(ctx); err != nil {
		if isDuplicateKey(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "slug already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post.
func (h *Handler) DeletePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := h.findPost(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, err := h.db.NewDelete().Model(post).WherePK().Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) findPost(ctx context.Context, idOrSlug string) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	q := h.db.NewSelect().Model(post)
	if id, err := uuid.Parse(idOrSlug); err == nil {
		q = q.Where("bp.id = ?", id)
	} else {
		q = q.Where("bp.slug = ?", idOrSlug)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return post, nil
}

// staffSession reports whether the request carries a valid staff cookie.
// Used on public read routes where auth is optional.
func (h *Handler) staffSession(c echo.Context) bool {
	claims, err := mw.FromCookie(c, h.cfg.CookieName, h.cfg.JWTKey())
	return err == nil && models.IsStaff(claims.Role)
}

// uniqueSlug probes base, base-2, base-3, … until taken reports a free one.
func uniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	slug := base
	for i := 2; ; i++ {
		exists, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
