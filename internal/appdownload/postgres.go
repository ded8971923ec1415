package appdownload

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context) (*Links, error) {
	rows, err := r.pool.Query(ctx, getLinksSQL)
	if err != nil {
		return nil, fmt.Errorf("get app download links: %w", err)
	}
	links, err := pgx.CollectRows(rows, pgx.RowToStructByName[Links])
	if err != nil {
		return nil, fmt.Errorf("get app download links: %w", err)
	}
	return single(links)
}
