package testutil

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/product"
)

// PostgresDSNEnv names the database used by the Postgres backend tests.
// The tests skip when it is unset.
const PostgresDSNEnv = "SHOWCASE_TEST_POSTGRES_DSN"

// hosted table layout: uuid ids, numeric prices, nullable columns
var pgSchema = []string{
	`CREATE TABLE products (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		original_price numeric(10,2),
		current_price numeric(10,2),
		image_url text,
		purchase_link text,
		inquiry_link text,
		created_at timestamptz NOT NULL DEFAULT now(),
		is_recommended boolean
	)`,
	`CREATE TABLE campaign_products (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		original_price numeric(10,2),
		current_price numeric(10,2),
		image_url text,
		purchase_link text,
		inquiry_link text,
		created_at timestamptz NOT NULL DEFAULT now(),
		is_recommended boolean
	)`,
	`CREATE TABLE app_downloads (
		id serial PRIMARY KEY,
		ios_app_store text,
		android_google_play text,
		android_direct_download text,
		huawei_app_gallery text,
		xiaomi_app_store text,
		oppo_app_store text,
		vivo_app_store text,
		samsung_galaxy_store text
	)`,
}

// NewPostgresPool returns a pool bound to a fresh schema holding the three
// hosted tables. The schema is dropped when the test ends.
func NewPostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}
	ctx := context.Background()

	admin, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	schema := "showcase_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close(ctx)
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		if _, err := admin.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		admin.Close(ctx)
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)

	for _, stmt := range pgSchema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("create tables: %v", err)
		}
	}
	return pool
}

// PgInsertProduct writes p into table. Empty link columns are stored as NULL.
func PgInsertProduct(t *testing.T, pool *pgxpool.Pool, table string, p product.Product) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"INSERT INTO "+table+` (id, name, original_price, current_price, image_url, purchase_link, inquiry_link, created_at, is_recommended)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID,
		p.Name,
		pgPrice(p.OriginalPrice),
		pgPrice(p.CurrentPrice),
		p.ImageURL,
		nullable(p.PurchaseLink),
		nullable(p.InquiryLink),
		p.CreatedAt,
		p.IsRecommended,
	)
	if err != nil {
		t.Fatalf("insert into %s: %v", table, err)
	}
}

// PgInsertAppDownloads writes one app_downloads row.
func PgInsertAppDownloads(t *testing.T, pool *pgxpool.Pool, l appdownload.Links) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
INSERT INTO app_downloads (
    ios_app_store, android_google_play, android_direct_download, huawei_app_gallery,
    xiaomi_app_store, oppo_app_store, vivo_app_store, samsung_galaxy_store
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		nullable(l.IOSAppStore),
		nullable(l.AndroidGooglePlay),
		nullable(l.AndroidDirectDownload),
		nullable(l.HuaweiAppGallery),
		nullable(l.XiaomiAppStore),
		nullable(l.OppoAppStore),
		nullable(l.VivoAppStore),
		nullable(l.SamsungGalaxyStore),
	)
	if err != nil {
		t.Fatalf("insert app_downloads: %v", err)
	}
}

func pgPrice(p product.Price) any {
	if !p.Valid {
		return nil
	}
	return p.Float64
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
