package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/product"
)

const insertProductSQL = `
INSERT INTO %s (
    id, name, original_price, current_price, image_url, purchase_link, inquiry_link, created_at, is_recommended
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// InsertProduct writes p into table ("products" or "campaign_products").
// An empty ID is replaced with a random UUID; a zero CreatedAt with now.
func InsertProduct(t *testing.T, db *sqlx.DB, table string, p product.Product) product.Product {
	t.Helper()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	q := fmt.Sprintf(insertProductSQL, table)
	_, err := db.Exec(q,
		p.ID,
		p.Name,
		p.OriginalPrice,
		p.CurrentPrice,
		p.ImageURL,
		p.PurchaseLink,
		p.InquiryLink,
		p.CreatedAt.Format("2006-01-02 15:04:05"),
		p.IsRecommended,
	)
	if err != nil {
		t.Fatalf("insert into %s: %v", table, err)
	}
	return p
}

// InsertAppDownloads writes one app_downloads row.
func InsertAppDownloads(t *testing.T, db *sqlx.DB, l appdownload.Links) {
	t.Helper()

	_, err := db.NamedExec(`
INSERT INTO app_downloads (
    ios_app_store, android_google_play, android_direct_download, huawei_app_gallery,
    xiaomi_app_store, oppo_app_store, vivo_app_store, samsung_galaxy_store
) VALUES (
    :ios_app_store, :android_google_play, :android_direct_download, :huawei_app_gallery,
    :xiaomi_app_store, :oppo_app_store, :vivo_app_store, :samsung_galaxy_store
)`, l)
	if err != nil {
		t.Fatalf("insert app_downloads: %v", err)
	}
}
