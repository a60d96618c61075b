package seed

import (
	"context"
	"database/sql"
	"fmt"
)

type marketplace struct {
	name           string
	commissionRate float64
}

type vatCategory struct {
	name string
	rate float64
}

var defaultMarketplaces = []marketplace{
	{name: "Pazaryeri (varsayılan)", commissionRate: 20},
	{name: "Kendi web sitem", commissionRate: 0},
}

var defaultVATCategories = []vatCategory{
	{name: "Genel (%20)", rate: 20},
	{name: "İndirimli (%10)", rate: 10},
	{name: "Temel ihtiyaç (%1)", rate: 1},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the default catalog entries that are missing. It is idempotent.
func Run(ctx context.Context, db *sql.DB) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, m := range defaultMarketplaces {
		if err := ensureMarketplace(ctx, tx, m, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, c := range defaultVATCategories {
		if err := ensureVATCategory(ctx, tx, c, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMarketplace(ctx context.Context, tx *sql.Tx, m marketplace, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM marketplaces WHERE name = ? LIMIT 1)`, m.name).Scan(&exists); err != nil {
		return fmt.Errorf("check marketplace %q existence: %w", m.name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO marketplaces (name, commission_rate, active)
		VALUES (?, ?, ?)
	`, m.name, m.commissionRate, true); err != nil {
		return fmt.Errorf("insert marketplace %q: %w", m.name, err)
	}
	stats.Inserts++
	return nil
}

func ensureVATCategory(ctx context.Context, tx *sql.Tx, c vatCategory, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM vat_categories WHERE name = ? LIMIT 1)`, c.name).Scan(&exists); err != nil {
		return fmt.Errorf("check vat category %q existence: %w", c.name, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO vat_categories (name, rate, active)
		VALUES (?, ?, ?)
	`, c.name, c.rate, true); err != nil {
		return fmt.Errorf("insert vat category %q: %w", c.name, err)
	}
	stats.Inserts++
	return nil
}
