package product

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository that queries the hosted Postgres tables directly.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetAll(ctx context.Context) ([]Product, error) {
	out, err := r.query(ctx, pgGetAllProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("get all products: %w", err)
	}
	return out, nil
}

func (r *postgresRepo) GetCampaign(ctx context.Context) ([]Product, error) {
	out, err := r.query(ctx, pgGetCampaignProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("get campaign products: %w", err)
	}
	return out, nil
}

func (r *postgresRepo) query(ctx context.Context, q string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Product])
}
