package handlers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/mapkadev/mapka/config"
	"github.com/mapkadev/mapka/geocode"
	"github.com/mapkadev/mapka/models"
	"github.com/mapkadev/mapka/snapshot"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db    *bun.DB
	cfg   *config.Config
	geo   *geocode.Geocoder
	snaps *snapshot.Store
	log   *zap.Logger
}

// New creates a Handler with its collaborators.
func New(db *bun.DB, cfg *config.Config, geo *geocode.Geocoder, snaps *snapshot.Store, log *zap.Logger) *Handler {
	return &Handler{db: db, cfg: cfg, geo: geo, snaps: snaps, log: log}
}

// isDuplicateKey reports a unique-constraint violation (e.g. a taken slug).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

// findClub looks a club up by uuid or, failing that, by slug.
func (h *Handler) findClub(ctx context.Context, idOrSlug string) (*models.Club, error) {
	club := &models.Club{}
	q := h.db.NewSelect().Model(club).Relation("Address")
	if id, err := uuid.Parse(idOrSlug); err == nil {
		q = q.Where("c.id = ?", id)
	} else {
		q = q.Where("c.slug = ?", idOrSlug)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return club, nil
}

// loadClub reloads a club with every relation the serializer needs.
func (h *Handler) loadClub(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	club := &models.Club{}
	err := h.db.NewSelect().Model(club).
		Relation("Address").
		Relation("Teacher").
		Relation("Images").
		Relation("Schedules").
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return club, nil
}
