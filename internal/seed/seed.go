package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/wdquote/internal/catalog"
)

// Stats contains seed operation counters. Sizes, features and add-on
// categories are written together with their parent row and not counted.
type Stats struct {
	Inserts int
	Skipped int
}

// Run writes every catalog row that is not stored yet. Existing rows are left
// untouched, so running it repeatedly is safe.
func Run(ctx context.Context, db *sql.DB, cat *catalog.Catalog) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for i, p := range cat.Products() {
		if err := ensureProduct(ctx, tx, i, p, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for i, g := range cat.GlassOptions() {
		if err := ensureGlass(ctx, tx, i, g, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for i, f := range cat.FinishOptions() {
		if err := ensureFinish(ctx, tx, i, f, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for i, a := range cat.AddonOptions() {
		if err := ensureAddon(ctx, tx, i, a, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func exists(ctx context.Context, tx *sql.Tx, table, id string) (bool, error) {
	var found bool
	query := `SELECT EXISTS(SELECT 1 FROM ` + table + ` WHERE id = ? LIMIT 1)`
	if err := tx.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("check %s existence: %w", table, err)
	}
	return found, nil
}

func ensureProduct(ctx context.Context, tx *sql.Tx, position int, p catalog.Product, stats *Stats) error {
	found, err := exists(ctx, tx, "products", p.ID)
	if err != nil {
		return err
	}
	if found {
		stats.Skipped++
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products (id, name, category, description, position)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, string(p.Category), p.Description, position); err != nil {
		return fmt.Errorf("insert product %s: %w", p.ID, err)
	}

	for i, feature := range p.Features {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_features (product_id, position, feature)
			VALUES (?, ?, ?)
		`, p.ID, i, feature); err != nil {
			return fmt.Errorf("insert feature for %s: %w", p.ID, err)
		}
	}

	for i, s := range p.Sizes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_sizes (product_id, position, label, width_mm, height_mm, base_price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, i, s.Label, s.Width, s.Height, s.BasePrice); err != nil {
			return fmt.Errorf("insert size for %s: %w", p.ID, err)
		}
	}

	stats.Inserts++
	return nil
}

func ensureGlass(ctx context.Context, tx *sql.Tx, position int, g catalog.GlassOption, stats *Stats) error {
	found, err := exists(ctx, tx, "glass_options", g.ID)
	if err != nil {
		return err
	}
	if found {
		stats.Skipped++
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO glass_options (id, name, multiplier, position)
		VALUES (?, ?, ?, ?)
	`, g.ID, g.Name, g.Multiplier, position); err != nil {
		return fmt.Errorf("insert glass option %s: %w", g.ID, err)
	}
	stats.Inserts++
	return nil
}

func ensureFinish(ctx context.Context, tx *sql.Tx, position int, f catalog.FinishOption, stats *Stats) error {
	found, err := exists(ctx, tx, "finish_options", f.ID)
	if err != nil {
		return err
	}
	if found {
		stats.Skipped++
		return nil
	}

	var hex sql.NullString
	if f.Hex != "" {
		hex = sql.NullString{String: f.Hex, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO finish_options (id, name, surcharge, hex, position)
		VALUES (?, ?, ?, ?, ?)
	`, f.ID, f.Name, f.Surcharge, hex, position); err != nil {
		return fmt.Errorf("insert finish option %s: %w", f.ID, err)
	}
	stats.Inserts++
	return nil
}

func ensureAddon(ctx context.Context, tx *sql.Tx, position int, a catalog.AddonOption, stats *Stats) error {
	found, err := exists(ctx, tx, "addon_options", a.ID)
	if err != nil {
		return err
	}
	if found {
		stats.Skipped++
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO addon_options (id, name, price, position)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Name, a.Price, position); err != nil {
		return fmt.Errorf("insert addon option %s: %w", a.ID, err)
	}

	for i, category := range a.AppliesTo {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO addon_categories (addon_id, position, category)
			VALUES (?, ?, ?)
		`, a.ID, i, string(category)); err != nil {
			return fmt.Errorf("insert category for addon %s: %w", a.ID, err)
		}
	}

	stats.Inserts++
	return nil
}
