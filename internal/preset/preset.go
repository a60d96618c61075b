// Package preset reads the reference catalog of marketplaces and VAT
// categories used to prefill calculator rates.
package preset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a preset id does not match an active row.
var ErrNotFound = errors.New("preset not found")

// Marketplace is a sales channel with its commission rate in percent.
type Marketplace struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	CommissionRate float64 `json:"commissionRate"`
}

// VATCategory is a product VAT class with its rate in percent.
type VATCategory struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
}

// Repository reads presets from the catalog database.
type Repository struct {
	db *sql.DB
}

// NewRepository returns a Repository backed by db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Marketplaces lists active marketplaces ordered by name.
func (r *Repository) Marketplaces(ctx context.Context) ([]Marketplace, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, commission_rate
		FROM marketplaces
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query marketplaces: %w", err)
	}
	defer rows.Close()

	marketplaces := make([]Marketplace, 0)
	for rows.Next() {
		var m Marketplace
		if err := rows.Scan(&m.ID, &m.Name, &m.CommissionRate); err != nil {
			return nil, fmt.Errorf("scan marketplace: %w", err)
		}
		marketplaces = append(marketplaces, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate marketplaces: %w", err)
	}

	return marketplaces, nil
}

// VATCategories lists active VAT categories, highest rate first.
func (r *Repository) VATCategories(ctx context.Context) ([]VATCategory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, rate
		FROM vat_categories
		WHERE active = TRUE
		ORDER BY rate DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("query vat categories: %w", err)
	}
	defer rows.Close()

	categories := make([]VATCategory, 0)
	for rows.Next() {
		var c VATCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Rate); err != nil {
			return nil, fmt.Errorf("scan vat category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vat categories: %w", err)
	}

	return categories, nil
}

// Marketplace returns the active marketplace with id or ErrNotFound.
func (r *Repository) Marketplace(ctx context.Context, id int64) (Marketplace, error) {
	var m Marketplace
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, commission_rate
		FROM marketplaces
		WHERE id = ? AND active = TRUE
	`, id).Scan(&m.ID, &m.Name, &m.CommissionRate)
	if errors.Is(err, sql.ErrNoRows) {
		return Marketplace{}, fmt.Errorf("marketplace %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Marketplace{}, fmt.Errorf("query marketplace %d: %w", id, err)
	}
	return m, nil
}

// VATCategory returns the active VAT category with id or ErrNotFound.
func (r *Repository) VATCategory(ctx context.Context, id int64) (VATCategory, error) {
	var c VATCategory
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, rate
		FROM vat_categories
		WHERE id = ? AND active = TRUE
	`, id).Scan(&c.ID, &c.Name, &c.Rate)
	if errors.Is(err, sql.ErrNoRows) {
		return VATCategory{}, fmt.Errorf("vat category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return VATCategory{}, fmt.Errorf("query vat category %d: %w", id, err)
	}
	return c, nil
}

// Ping checks the catalog database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
