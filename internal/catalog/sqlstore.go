package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadFromDB reads a catalog from the SQLite catalog schema, keeping the
// declared order of every table.
func LoadFromDB(ctx context.Context, db *sql.DB) (*Catalog, error) {
	var t Tables

	products, err := loadProducts(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		switch p.Category {
		case CategoryWindows:
			t.Windows = append(t.Windows, p)
		case CategoryDoors:
			t.Doors = append(t.Doors, p)
		default:
			return nil, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
		}
	}

	if t.Glass, err = loadGlass(ctx, db); err != nil {
		return nil, err
	}
	if t.Finish, err = loadFinish(ctx, db); err != nil {
		return nil, err
	}
	if t.Addons, err = loadAddons(ctx, db); err != nil {
		return nil, err
	}

	c, err := New(t)
	if err != nil {
		return nil, fmt.Errorf("validate stored catalog: %w", err)
	}
	return c, nil
}

func loadProducts(ctx context.Context, db *sql.DB) ([]Product, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, category, description
		FROM products
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	index := make(map[string]int)
	for rows.Next() {
		p := Product{Features: []string{}}
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	featureRows, err := db.QueryContext(ctx, `
		SELECT product_id, feature
		FROM product_features
		ORDER BY product_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query product features: %w", err)
	}
	defer featureRows.Close()

	for featureRows.Next() {
		var productID, feature string
		if err := featureRows.Scan(&productID, &feature); err != nil {
			return nil, fmt.Errorf("scan product feature: %w", err)
		}
		i, ok := index[productID]
		if !ok {
			continue
		}
		products[i].Features = append(products[i].Features, feature)
	}
	if err := featureRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product features: %w", err)
	}

	sizeRows, err := db.QueryContext(ctx, `
		SELECT product_id, label, width_mm, height_mm, base_price
		FROM product_sizes
		ORDER BY product_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query product sizes: %w", err)
	}
	defer sizeRows.Close()

	for sizeRows.Next() {
		var productID string
		var s SizeOption
		if err := sizeRows.Scan(&productID, &s.Label, &s.Width, &s.Height, &s.BasePrice); err != nil {
			return nil, fmt.Errorf("scan product size: %w", err)
		}
		i, ok := index[productID]
		if !ok {
			continue
		}
		products[i].Sizes = append(products[i].Sizes, s)
	}
	if err := sizeRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product sizes: %w", err)
	}

	return products, nil
}

func loadGlass(ctx context.Context, db *sql.DB) ([]GlassOption, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, multiplier
		FROM glass_options
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query glass options: %w", err)
	}
	defer rows.Close()

	glass := make([]GlassOption, 0)
	for rows.Next() {
		var g GlassOption
		if err := rows.Scan(&g.ID, &g.Name, &g.Multiplier); err != nil {
			return nil, fmt.Errorf("scan glass option: %w", err)
		}
		glass = append(glass, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glass options: %w", err)
	}
	return glass, nil
}

func loadFinish(ctx context.Context, db *sql.DB) ([]FinishOption, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, surcharge, COALESCE(hex, '')
		FROM finish_options
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query finish options: %w", err)
	}
	defer rows.Close()

	finish := make([]FinishOption, 0)
	for rows.Next() {
		var f FinishOption
		if err := rows.Scan(&f.ID, &f.Name, &f.Surcharge, &f.Hex); err != nil {
			return nil, fmt.Errorf("scan finish option: %w", err)
		}
		finish = append(finish, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate finish options: %w", err)
	}
	return finish, nil
}

func loadAddons(ctx context.Context, db *sql.DB) ([]AddonOption, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, price
		FROM addon_options
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query addon options: %w", err)
	}
	defer rows.Close()

	addons := make([]AddonOption, 0)
	index := make(map[string]int)
	for rows.Next() {
		a := AddonOption{AppliesTo: []Category{}}
		if err := rows.Scan(&a.ID, &a.Name, &a.Price); err != nil {
			return nil, fmt.Errorf("scan addon option: %w", err)
		}
		index[a.ID] = len(addons)
		addons = append(addons, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addon options: %w", err)
	}

	catRows, err := db.QueryContext(ctx, `
		SELECT addon_id, category
		FROM addon_categories
		ORDER BY addon_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query addon categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var addonID string
		var category Category
		if err := catRows.Scan(&addonID, &category); err != nil {
			return nil, fmt.Errorf("scan addon category: %w", err)
		}
		i, ok := index[addonID]
		if !ok {
			continue
		}
		addons[i].AppliesTo = append(addons[i].AppliesTo, category)
	}
	if err := catRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addon categories: %w", err)
	}

	return addons, nil
}
