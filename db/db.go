package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/mapkadev/mapka/config"
	"github.com/mapkadev/mapka/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Teacher)(nil),
		(*models.Address)(nil),
		(*models.Club)(nil),
		(*models.Image)(nil),
		(*models.Schedule)(nil),
		(*models.Review)(nil),
		(*models.BlogPost)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	// Deleting a club must take its images, schedules and reviews with it.
	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'clubs_address_fk') THEN ALTER TABLE clubs ADD CONSTRAINT clubs_address_fk FOREIGN KEY (address_id) REFERENCES addresses (id) ON DELETE SET NULL; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'clubs_teacher_fk') THEN ALTER TABLE clubs ADD CONSTRAINT clubs_teacher_fk FOREIGN KEY (teacher_id) REFERENCES teachers (id) ON DELETE SET NULL; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'images_club_fk') THEN ALTER TABLE images ADD CONSTRAINT images_club_fk FOREIGN KEY (club_id) REFERENCES clubs (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'schedules_club_fk') THEN ALTER TABLE schedules ADD CONSTRAINT schedules_club_fk FOREIGN KEY (club_id) REFERENCES clubs (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'reviews_club_fk') THEN ALTER TABLE reviews ADD CONSTRAINT reviews_club_fk FOREIGN KEY (club_id) REFERENCES clubs (id) ON DELETE CASCADE; END IF; END $$`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
