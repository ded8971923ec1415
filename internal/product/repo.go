package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository reads the product catalog. Implementations never write.
type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetCampaign(ctx context.Context) ([]Product, error)
}

type repo struct {
	db *sqlx.DB
}

// New returns a Repository backed by the local SQLite mirror.
func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) GetAll(ctx context.Context) ([]Product, error) {
	var out []Product
	err := r.db.SelectContext(ctx, &out, getAllProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("get all products: %w", err)
	}
	return out, nil
}

func (r *repo) GetCampaign(ctx context.Context) ([]Product, error) {
	var out []Product
	err := r.db.SelectContext(ctx, &out, getCampaignProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("get campaign products: %w", err)
	}
	return out, nil
}
