package handlers

import (
	"database/sql"
	"encoding/xml"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mapkadev/mapka/models"
)

// ClubPage serves a club's cached static page, regenerating it from the
// database when the file is missing.
func (h *Handler) ClubPage(c echo.Context) error {
	slug := c.Param("slug")

	path := h.snaps.Path(slug)
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}

	ctx := c.Request().Context()
	club, err := h.findClub(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	full, err := h.loadClub(ctx, club.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	view := ClubToView(full, h.cfg.BaseURL)
	page := snapshotPage(view)
	html, err := h.snaps.Render(page)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.snaps.WriteBestEffort(view.Slug, page)

	return c.HTMLBlob(http.StatusOK, html)
}

// Robots serves robots.txt pointing crawlers at the sitemap.
func (h *Handler) Robots(c echo.Context) error {
	body := "User-agent: *\n" +
		"Disallow: /admin\n" +
		"Allow: /\n" +
		"Sitemap: " + h.cfg.BaseURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap generates sitemap.xml from club slugs and published blog slugs.
func (h *Handler) Sitemap(c echo.Context) error {
	ctx := c.Request().Context()

	type slugRow struct {
		Slug      string    `bun:"slug"`
		UpdatedAt time.Time `bun:"updated_at"`
	}

	var clubs []slugRow
	err := h.db.NewSelect().Model((*models.Club)(nil)).
		Column("slug", "updated_at").
		OrderExpr("slug ASC").
		Scan(ctx, &clubs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var posts []slugRow
	err = h.db.NewSelect().Model((*models.BlogPost)(nil)).
		Column("slug", "updated_at").
		Where("status = ?", models.StatusPublished).
		OrderExpr("slug ASC").
		Scan(ctx, &posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(clubs)+len(posts)+1),
	}
	set.URLs = append(set.URLs, sitemapURL{Loc: h.cfg.BaseURL + "/"})
	for _, row := range clubs {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.cfg.BaseURL + "/club/" + row.Slug,
			LastMod: row.UpdatedAt.Format("2006-01-02"),
		})
	}
	for _, row := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.cfg.BaseURL + "/blog/" + row.Slug,
			LastMod: row.UpdatedAt.Format("2006-01-02"),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "application/xml", append([]byte(xml.Header), body...))
}
