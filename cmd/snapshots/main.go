// cmd/snapshots/main.go
// Regenerates the static HTML page for every club, e.g. after a template
// change or when the content directory was lost.
//
// Usage:
//
//	go run ./cmd/snapshots
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mapkadev/mapka/config"
	bundb "github.com/mapkadev/mapka/db"
	"github.com/mapkadev/mapka/handlers"
	applog "github.com/mapkadev/mapka/logger"
	"github.com/mapkadev/mapka/models"
	"github.com/mapkadev/mapka/snapshot"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()

	snaps, err := snapshot.NewStore(cfg.StaticClubsDir, logger)
	if err != nil {
		log.Fatal("snapshot store:", err)
	}

	ctx := context.Background()
	var clubs []*models.Club
	err = db.NewSelect().Model(&clubs).
		Relation("Address").
		Relation("Teacher").
		Relation("Images").
		Relation("Schedules").
		Scan(ctx)
	if err != nil {
		log.Fatal("load clubs:", err)
	}

	written := 0
	for _, club := range clubs {
		view := handlers.ClubToView(club, cfg.BaseURL)
		page := snapshot.Page{
			Name:        view.Name,
			Description: view.Description,
			Image:       view.Image,
			Location:    view.Location,
			Tags:        view.Tags,
		}
		if err := snaps.Write(view.Slug, page); err != nil {
			log.Printf("snapshot %s: %v", view.Slug, err)
			continue
		}
		written++
	}

	fmt.Printf("wrote %d of %d snapshots\n", written, len(clubs))
}
