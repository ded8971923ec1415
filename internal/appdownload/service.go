package appdownload

import (
	"context"

	"acbuy.com/showcase/internal/logx"
)

// Table is the name of the configuration table in the hosted store.
const Table = "app_downloads"

type Service struct {
	repo    Repository
	observe func(table string, err error)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:    repo,
		observe: func(string, error) {},
	}
}

// WithObserver registers fn to be called after each read.
func (s *Service) WithObserver(fn func(table string, err error)) *Service {
	if fn != nil {
		s.observe = fn
	}
	return s
}

// Get returns the download links, or nil when they cannot be read.
// Errors are logged and never returned.
func (s *Service) Get(ctx context.Context) *Links {
	links, err := s.repo.Get(ctx)
	s.observe(Table, err)
	if err != nil {
		logx.Error().Err(err).Str("table", Table).Msg("failed to fetch app download links")
		return nil
	}
	return links
}
