package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"acbuy.com/showcase/internal/appdownload"
	"acbuy.com/showcase/internal/product"
)

// wireProduct tolerates numeric ids and timestamps without a zone.
type wireProduct struct {
	ID            json.RawMessage `json:"id"`
	Name          string          `json:"name"`
	OriginalPrice product.Price   `json:"original_price"`
	CurrentPrice  product.Price   `json:"current_price"`
	ImageURL      *string         `json:"image_url"`
	PurchaseLink  string          `json:"purchase_link"`
	InquiryLink   string          `json:"inquiry_link"`
	CreatedAt     string          `json:"created_at"`
	IsRecommended bool            `json:"is_recommended"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (w wireProduct) product() product.Product {
	id := strings.TrimSpace(string(w.ID))
	if unquoted, err := strconv.Unquote(id); err == nil {
		id = unquoted
	} else if id == "null" {
		id = ""
	}
	return product.Product{
		ID:            id,
		Name:          w.Name,
		OriginalPrice: w.OriginalPrice,
		CurrentPrice:  w.CurrentPrice,
		ImageURL:      w.ImageURL,
		PurchaseLink:  w.PurchaseLink,
		InquiryLink:   w.InquiryLink,
		CreatedAt:     parseTime(w.CreatedAt),
		IsRecommended: w.IsRecommended,
	}
}

type productRepo struct {
	client *Client
}

// NewProductRepository reads products and campaign_products over REST.
func NewProductRepository(c *Client) product.Repository {
	return &productRepo{client: c}
}

func (r *productRepo) GetAll(ctx context.Context) ([]product.Product, error) {
	out, err := r.list(ctx, Query{Table: product.ProductsTable})
	if err != nil {
		return nil, fmt.Errorf("get all products: %w", err)
	}
	return out, nil
}

func (r *productRepo) GetCampaign(ctx context.Context) ([]product.Product, error) {
	out, err := r.list(ctx, Query{Table: product.CampaignTable, OrderBy: "created_at"})
	if err != nil {
		return nil, fmt.Errorf("get campaign products: %w", err)
	}
	return out, nil
}

func (r *productRepo) list(ctx context.Context, q Query) ([]product.Product, error) {
	rows, err := Select[[]wireProduct](ctx, r.client, q)
	if err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(rows))
	for _, w := range rows {
		out = append(out, w.product())
	}
	return out, nil
}

type appDownloadRepo struct {
	client *Client
}

// NewAppDownloadRepository reads the single app_downloads row over REST.
func NewAppDownloadRepository(c *Client) appdownload.Repository {
	return &appDownloadRepo{client: c}
}

func (r *appDownloadRepo) Get(ctx context.Context) (*appdownload.Links, error) {
	links, err := Select[appdownload.Links](ctx, r.client, Query{Table: appdownload.Table, Single: true})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotSingle() {
			return nil, fmt.Errorf("get app download links: %w: %w", appdownload.ErrNotSingle, err)
		}
		return nil, fmt.Errorf("get app download links: %w", err)
	}
	return &links, nil
}
