package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/product"
	"acbuy.com/showcase/internal/sqlite"
)

// NewTestDB returns an empty, migrated mirror database in a temp dir.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "mirror.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	// DELETE mode for tests
	if _, err := db.Exec(`PRAGMA journal_mode=DELETE;`); err != nil {
		t.Fatalf("set journal mode: %v", err)
	}

	if err := sqlite.RunMigrations(db.DB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Seed is the content of a test mirror. A nil Links leaves app_downloads
// empty.
type Seed struct {
	Products []product.Product
	Campaign []product.Product
	Links    *appdownload.Links
}

// NewSeededDB returns a migrated mirror holding seed.
func NewSeededDB(t *testing.T, seed Seed) *sqlx.DB {
	t.Helper()

	db := NewTestDB(t)
	for _, p := range seed.Products {
		InsertProduct(t, db, product.ProductsTable, p)
	}
	for _, p := range seed.Campaign {
		InsertProduct(t, db, product.CampaignTable, p)
	}
	if seed.Links != nil {
		InsertAppDownloads(t, db, *seed.Links)
	}
	return db
}
