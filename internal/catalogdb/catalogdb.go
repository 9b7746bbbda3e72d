// Package catalogdb picks the catalog source for the server and CLI.
package catalogdb

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Simplici0/wdquote/internal/catalog"
	"github.com/Simplici0/wdquote/internal/db"
	"github.com/Simplici0/wdquote/internal/migrations"
	"github.com/Simplici0/wdquote/internal/seed"
)

// Load returns the catalog to price against. With an empty path the built-in
// catalog is used. Otherwise the SQLite file is migrated, optionally topped up
// with built-in rows, and read into memory. The database is closed before
// returning.
func Load(ctx context.Context, path string, seedDefaults bool, log *zap.Logger) (*catalog.Catalog, error) {
	if path == "" {
		log.Info("using built-in catalog")
		return catalog.Default(), nil
	}

	database, err := db.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	applied, err := migrations.Up(ctx, database)
	if err != nil {
		return nil, err
	}
	if len(applied) > 0 {
		log.Info("applied catalog migrations", zap.Int64s("versions", applied))
	}

	if seedDefaults {
		stats, err := seed.Run(ctx, database, catalog.Default())
		if err != nil {
			return nil, fmt.Errorf("seed catalog database: %w", err)
		}
		log.Info("seeded catalog database", zap.Int("inserts", stats.Inserts), zap.Int("skipped", stats.Skipped))
	}

	cat, err := catalog.LoadFromDB(ctx, database)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", path, err)
	}
	log.Info("loaded catalog database",
		zap.String("path", path),
		zap.Int("products", len(cat.Products())),
		zap.Int("addons", len(cat.AddonOptions())),
	)
	return cat, nil
}

// Seed migrates the SQLite file at path and writes any missing built-in rows.
func Seed(ctx context.Context, path string) (seed.Stats, error) {
	database, err := db.Open(ctx, path)
	if err != nil {
		return seed.Stats{}, err
	}
	defer database.Close()

	if _, err := migrations.Up(ctx, database); err != nil {
		return seed.Stats{}, err
	}
	return seed.Run(ctx, database, catalog.Default())
}
