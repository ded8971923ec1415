package product

import (
	"context"

	"acbuy.com/showcase/internal/logx"
)

// Table names as exposed by the hosted store.
const (
	ProductsTable = "products"
	CampaignTable = "campaign_products"
)

// ReadObserver is notified after every table read.
type ReadObserver func(table string, err error)

type Service struct {
	repo    Repository
	observe ReadObserver
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		observe: func(string, error) {},
	}
}

// WithObserver registers fn to be called after each read.
func (s *Service) WithObserver(fn ReadObserver) *Service {
	if fn != nil {
		s.observe = fn
	}
	return s
}

// GetAll returns the whole catalog. Failures are logged and returned.
func (s *Service) GetAll(ctx context.Context) ([]Product, error) {
	out, err := s.repo.GetAll(ctx)
	s.observe(ProductsTable, err)
	if err != nil {
		logx.Error().Err(err).Str("table", ProductsTable).Msg("failed to fetch products")
		return nil, err
	}
	logx.Debug().Str("table", ProductsTable).Int("count", len(out)).Msg("fetched products")
	return out, nil
}

// GetCampaign returns the promoted products, newest first. Failures are
// logged and returned; an empty table yields an empty slice.
func (s *Service) GetCampaign(ctx context.Context) ([]Product, error) {
	out, err := s.repo.GetCampaign(ctx)
	s.observe(CampaignTable, err)
	if err != nil {
		logx.Error().Err(err).Str("table", CampaignTable).Msg("failed to fetch campaign products")
		return nil, err
	}
	if out == nil {
		out = []Product{}
	}
	logx.Debug().Str("table", CampaignTable).Int("count", len(out)).Msg("fetched campaign products")
	return out, nil
}
