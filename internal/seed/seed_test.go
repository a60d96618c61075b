package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/netkar/internal/db"
	"github.com/Simplici0/netkar/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	want := len(defaultMarketplaces) + len(defaultVATCategories)
	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != want {
				t.Fatalf("expected %d inserts in first run, got %d", want, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM marketplaces`, nil, len(defaultMarketplaces))
	assertCount(t, database, `SELECT COUNT(*) FROM vat_categories`, nil, len(defaultVATCategories))
	assertCount(t, database, `SELECT COUNT(*) FROM marketplaces WHERE name = ? AND commission_rate = 20`, "Pazaryeri (varsayılan)", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM vat_categories WHERE rate IN (?, ?, ?)`, []any{1, 10, 20}, 3)
}

func TestRunKeepsExistingRows(t *testing.T) {
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "seed-keep.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO marketplaces (name, commission_rate) VALUES (?, ?)`, "Kendi web sitem", 3.5); err != nil {
		t.Fatalf("insert marketplace: %v", err)
	}

	stats, err := Run(ctx, database)
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if want := len(defaultMarketplaces) + len(defaultVATCategories) - 1; stats.Inserts != want {
		t.Fatalf("expected %d inserts, got %d", want, stats.Inserts)
	}

	assertCount(t, database, `SELECT COUNT(*) FROM marketplaces WHERE name = ? AND commission_rate = 3.5`, "Kendi web sitem", 1)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
