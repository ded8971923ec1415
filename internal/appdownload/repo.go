package appdownload

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotSingle is returned when app_downloads does not hold exactly one row.
var ErrNotSingle = errors.New("app_downloads must contain exactly one row")

type Repository interface {
	Get(ctx context.Context) (*Links, error)
}

type repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context) (*Links, error) {
	var rows []Links
	if err := r.db.SelectContext(ctx, &rows, getLinksSQL); err != nil {
		return nil, fmt.Errorf("get app download links: %w", err)
	}
	return single(rows)
}

func single(rows []Links) (*Links, error) {
	if len(rows) != 1 {
		return nil, fmt.Errorf("get app download links: %w (got %d)", ErrNotSingle, len(rows))
	}
	return &rows[0], nil
}
