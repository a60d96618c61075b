package preset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/netkar/internal/db"
	"github.com/Simplici0/netkar/internal/migrations"
	"github.com/Simplici0/netkar/internal/seed"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "preset-test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(database))
	_, err = seed.Run(ctx, database)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO marketplaces (name, commission_rate, active) VALUES ('Kapalı kanal', 12, FALSE)`)
	require.NoError(t, err)

	return NewRepository(database)
}

func TestMarketplacesListsActiveByName(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.Marketplaces(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Kendi web sitem", got[0].Name)
	assert.Equal(t, 0.0, got[0].CommissionRate)
	assert.Equal(t, "Pazaryeri (varsayılan)", got[1].Name)
	assert.Equal(t, 20.0, got[1].CommissionRate)
}

func TestVATCategoriesOrderedByRate(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.VATCategories(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, []float64{20, 10, 1}, []float64{got[0].Rate, got[1].Rate, got[2].Rate})
}

func TestLookupByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	all, err := repo.Marketplaces(ctx)
	require.NoError(t, err)

	m, err := repo.Marketplace(ctx, all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, all[1], m)

	_, err = repo.Marketplace(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)

	cats, err := repo.VATCategories(ctx)
	require.NoError(t, err)
	c, err := repo.VATCategory(ctx, cats[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Rate)

	_, err = repo.VATCategory(ctx, -1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInactiveMarketplaceIsNotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	var id int64
	require.NoError(t, repo.db.QueryRow(`SELECT id FROM marketplaces WHERE name = 'Kapalı kanal'`).Scan(&id))

	_, err := repo.Marketplace(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}
