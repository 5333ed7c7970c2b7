package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/mapkadev/mapka/models"
	"github.com/mapkadev/mapka/parse"
)

// ListClubs returns all clubs with limit/offset pagination.
func (h *Handler) ListClubs(c echo.Context) error {
	limit, offset := pagination(c)

	var clubs []*models.Club
	err := h.db.NewSelect().Model(&clubs).
		Relation("Address").
		Relation("Teacher").
		Relation("Images").
		Relation("Schedules").
		OrderExpr("c.created_at ASC").
		Limit(limit).
		Offset(offset).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := make([]ClubView, len(clubs))
	for i, club := range clubs {
		out[i] = ClubToView(club, h.cfg.BaseURL)
	}
	return c.JSON(http.StatusOK, out)
}

// GetClub returns a single club by id or slug.
func (h *Handler) GetClub(c echo.Context) error {
	club, err := h.findClub(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	full, err := h.loadClub(c.Request().Context(), club.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ClubToView(full, h.cfg.BaseURL))
}

// CreateClub inserts a club with its address and schedules in one transaction.
func (h *Handler) CreateClub(c echo.Context) error {
	var p clubPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	name := p.Name.str()
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	ctx := c.Request().Context()

	slug := p.Slug.str()
	if slug == "" {
		slug = uuid.NewString()[:8]
	}

	club := &models.Club{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: p.Description.str(),
		Phone:       p.Phone.str(),
		WebSite:     first(p.WebSite, p.Website).str(),
		SocialLinks: normalizeSocial(first(p.SocialLinks, p.SocialLinks2).Value),
		Tags:        normalizeTags(p.Tags.Value),
		Category:    optStr(p.Category),
		PriceNotes:  optStr(first(p.PriceNotes, p.PriceNotes2)),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if img := p.Image.str(); img != "" {
		club.MainImageURL = &img
	}
	if cents, ok := priceCents(&p); ok {
		club.PriceCents = cents
	}
	if v, ok := intField(p.MinAge, p.MinAge2); ok {
		club.MinAge = v
	}
	if v, ok := intField(p.MaxAge, p.MaxAge2); ok {
		club.MaxAge = v
	}
	if p.GroupSize.Set && !p.GroupSize.Null {
		club.GroupSize = parse.Int(p.GroupSize.Value)
	}
	if tid := p.TeacherID.str(); tid != "" {
		if id, err := uuid.Parse(tid); err == nil {
			club.TeacherID = &id
		}
	}

	// Explicit payload coordinates win over geocoding the location.
	location := p.Location.str()
	if lat, lon, present := coords(&p); present {
		club.Lat, club.Lon = lat, lon
	} else if location != "" {
		if pt, ok := h.geo.Lookup(ctx, location); ok {
			club.Lat, club.Lon = &pt.Lat, &pt.Lon
		}
	}

	entries := parse.Schedules(p.Schedules.Value)

	err := h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if location != "" {
			street, city := parse.SplitLocation(location)
			if street != "" {
				addr := &models.Address{
					ID:     uuid.New(),
					Street: street,
					City:   city,
					Lat:    club.Lat,
					Lon:    club.Lon,
				}
				if _, err := tx.NewInsert().Model(addr).Exec(ctx); err != nil {
					return err
				}
				club.AddressID = &addr.ID
			}
		}
		if _, err := tx.NewInsert().Model(club).Exec(ctx); err != nil {
			return err
		}
		if rows := scheduleModels(club.ID, entries); len(rows) > 0 {
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "slug already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	full, err := h.loadClub(ctx, club.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	view := ClubToView(full, h.cfg.BaseURL)
	// Favorites live on the client; the flag is only echoed back.
	view.IsFavorite = p.IsFavorite.Set && !p.IsFavorite.Null && p.IsFavorite.Value
	h.snaps.WriteBestEffort(view.Slug, snapshotPage(view))

	h.log.Info("club created", zap.String("id", view.ID), zap.String("slug", view.Slug))
	return c.JSON(http.StatusOK, view)
}

// UpdateClub applies a partial update: only keys present in the payload
// are touched. Schedules, when present, are replaced wholesale.
func (h *Handler) UpdateClub(c echo.Context) error {
	var p clubPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	club, err := h.findClub(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	prevSlug := club.Slug
	prevLocation := club.Address.Location()

	if p.Name.Set {
		club.Name = p.Name.str()
	}
	if p.Slug.Set {
		if s := p.Slug.str(); s != "" {
			club.Slug = s
		}
	}
	if p.Description.Set {
		club.Description = p.Description.str()
	}
	if p.Image.Set {
		if img := p.Image.str(); img != "" {
			club.MainImageURL = &img
		} else {
			club.MainImageURL = nil
		}
	}
	if cents, ok := priceCents(&p); ok {
		club.PriceCents = cents
	}
	if p.Phone.Set {
		club.Phone = p.Phone.str()
	}
	if p.WebSite.Set || p.Website.Set {
		club.WebSite = first(p.WebSite, p.Website).str()
	}
	if p.Tags.Set {
		club.Tags = normalizeTags(p.Tags.Value)
	}
	if p.SocialLinks.Set || p.SocialLinks2.Set {
		club.SocialLinks = normalizeSocial(first(p.SocialLinks, p.SocialLinks2).Value)
	}
	if p.Category.Set {
		club.Category = optStr(p.Category)
	}
	if p.PriceNotes.Set || p.PriceNotes2.Set {
		club.PriceNotes = optStr(first(p.PriceNotes, p.PriceNotes2))
	}
	if v, ok := intField(p.MinAge, p.MinAge2); ok {
		club.MinAge = v
	}
	if v, ok := intField(p.MaxAge, p.MaxAge2); ok {
		club.MaxAge = v
	}
	if p.GroupSize.Set {
		if p.GroupSize.Null {
			club.GroupSize = nil
		} else {
			club.GroupSize = parse.Int(p.GroupSize.Value)
		}
	}
	if p.TeacherID.Set {
		club.TeacherID = nil
		if id, err := uuid.Parse(p.TeacherID.str()); err == nil {
			club.TeacherID = &id
		}
	}

	lat, lon, explicitCoords := coords(&p)
	if explicitCoords {
		club.Lat, club.Lon = lat, lon
	}

	location := p.Location.str()
	locationChanged := p.Location.Set && location != prevLocation

	// A moved club must not keep the old pin: re-geocode, and when the
	// geocoder has nothing, clear the coordinates rather than leave them stale.
	if locationChanged && !explicitCoords {
		club.Lat, club.Lon = nil, nil
		if location != "" {
			if pt, ok := h.geo.Lookup(ctx, location); ok {
				club.Lat, club.Lon = &pt.Lat, &pt.Lon
			}
		}
	}

	club.UpdatedAt = time.Now()

	err = h.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if p.Location.Set {
			street, city := parse.SplitLocation(location)
			if err := h.upsertAddress(ctx, tx, club, street, city); err != nil {
				return err
			}
		}

		if _, err := tx.NewUpdate().Model(club).WherePK().Exec(ctx); err != nil {
			return err
		}

		if p.Schedules.Set {
			if _, err := tx.NewDelete().Model((*models.Schedule)(nil)).
				Where("club_id = ?", club.ID).
				Exec(ctx); err != nil {
				return err
			}
			entries := parse.Schedules(p.Schedules.Value)
			if rows := scheduleModels(club.ID, entries); len(rows) > 0 {
				if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return echo.NewHTTPError(http.StatusBadRequest, "slug already taken")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	full, err := h.loadClub(ctx, club.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	view := ClubToView(full, h.cfg.BaseURL)
	view.IsFavorite = p.IsFavorite.Set && !p.IsFavorite.Null && p.IsFavorite.Value
	if prevSlug != view.Slug {
		h.snaps.RemoveBestEffort(prevSlug)
	}
	h.snaps.WriteBestEffort(view.Slug, snapshotPage(view))

	return c.JSON(http.StatusOK, view)
}

// DeleteClub removes a club; images, schedules and reviews cascade away
// with it, as does the cached static page.
func (h *Handler) DeleteClub(c echo.Context) error {
	ctx := c.Request().Context()
	club, err := h.findClub(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "club not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if _, err := h.db.NewDelete().Model(club).WherePK().Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.snaps.RemoveBestEffort(club.Slug)
	h.log.Info("club deleted", zap.String("id", club.ID.String()), zap.String("slug", club.Slug))
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// upsertAddress mutates the club's existing address in place, or creates
// one lazily on the first non-empty location.
func (h *Handler) upsertAddress(ctx context.Context, tx bun.Tx, club *models.Club, street, city string) error {
	if club.AddressID != nil {
		addr := &models.Address{}
		err := tx.NewSelect().Model(addr).Where("a.id = ?", *club.AddressID).Scan(ctx)
		switch {
		case err == nil:
			addr.Street = street
			addr.City = city
			addr.Lat = club.Lat
			addr.Lon = club.Lon
			_, err = tx.NewUpdate().Model(addr).WherePK().Exec(ctx)
			return err
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}
	}
	if street == "" && city == "" {
		return nil
	}
	addr := &models.Address{
		ID:     uuid.New(),
		Street: street,
		City:   city,
		Lat:    club.Lat,
		Lon:    club.Lon,
	}
	if _, err := tx.NewInsert().Model(addr).Exec(ctx); err != nil {
		return err
	}
	club.AddressID = &addr.ID
	return nil
}

// scheduleModels builds persistable rows from normalized entries.
func scheduleModels(clubID uuid.UUID, entries []parse.ScheduleEntry) []*models.Schedule {
	rows := make([]*models.Schedule, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &models.Schedule{
			ID:        uuid.New(),
			ClubID:    clubID,
			Weekday:   e.Weekday,
			StartTime: e.Start,
			EndTime:   e.End,
			Note:      e.Note,
		})
	}
	return rows
}

func optStr[T any](f Field[T]) *string {
	if s := f.str(); s != "" {
		return &s
	}
	return nil
}

func pagination(c echo.Context) (limit, offset int) {
	limit, offset = 100, 0
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
