// Package mirror copies the hosted tables into a local SQLite mirror so the
// storefront can run from the sqlite backend.
package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/logx"
	"acbuy.com/showcase/internal/product"
)

type Service struct {
	db *sqlx.DB
}

// NewService returns a Service writing to db, which must already be migrated.
func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

// Result summarises one sync.
type Result struct {
	Products         int           `json:"products"`
	CampaignProducts int           `json:"campaign_products"`
	AppDownloads     bool          `json:"app_downloads"`
	Took             time.Duration `json:"took"`
}

const insertProductSQL = `
INSERT INTO %s (
    id, name, original_price, current_price, image_url, purchase_link, inquiry_link, created_at, is_recommended
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertLinksSQL = `
INSERT INTO app_downloads (
    ios_app_store, android_google_play, android_direct_download, huawei_app_gallery,
    xiaomi_app_store, oppo_app_store, vivo_app_store, samsung_galaxy_store
) VALUES (
    :ios_app_store, :android_google_play, :android_direct_download, :huawei_app_gallery,
    :xiaomi_app_store, :oppo_app_store, :vivo_app_store, :samsung_galaxy_store
)`

// Sync reads every table from the source repositories and replaces the
// mirror's contents in one transaction. Nothing is written unless all
// product reads succeed. A missing or ambiguous app_downloads row leaves
// the mirror's table empty.
func (s *Service) Sync(ctx context.Context, products product.Repository, links appdownload.Repository) (*Result, error) {
	start := time.Now()

	all, err := products.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	campaign, err := products.GetCampaign(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	l, err := links.Get(ctx)
	if err != nil {
		logx.Warn().Err(err).Msg("app download links not mirrored")
		l = nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{product.ProductsTable, product.CampaignTable, appdownload.Table} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := insertProducts(ctx, tx, product.ProductsTable, all); err != nil {
		return nil, err
	}
	if err := insertProducts(ctx, tx, product.CampaignTable, campaign); err != nil {
		return nil, err
	}
	if l != nil {
		if _, err := tx.NamedExecContext(ctx, insertLinksSQL, l); err != nil {
			return nil, fmt.Errorf("insert %s: %w", appdownload.Table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	res := &Result{
		Products:         len(all),
		CampaignProducts: len(campaign),
		AppDownloads:     l != nil,
		Took:             time.Since(start),
	}
	logx.Info().
		Int("products", res.Products).
		Int("campaign_products", res.CampaignProducts).
		Bool("app_downloads", res.AppDownloads).
		Dur("took", res.Took).
		Msg("mirror synced")
	return res, nil
}

// insertProducts writes created_at in a layout go-sqlite3 parses back into time.Time.
func insertProducts(ctx context.Context, tx *sqlx.Tx, table string, ps []product.Product) error {
	q := fmt.Sprintf(insertProductSQL, table)
	for _, p := range ps {
		_, err := tx.ExecContext(ctx, q,
			p.ID,
			p.Name,
			p.OriginalPrice,
			p.CurrentPrice,
			p.ImageURL,
			p.PurchaseLink,
			p.InquiryLink,
			p.CreatedAt.UTC().Format("2006-01-02 15:04:05.999999999"),
			p.IsRecommended,
		)
		if err != nil {
			return fmt.Errorf("insert %s %s: %w", table, p.ID, err)
		}
	}
	return nil
}
