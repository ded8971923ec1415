package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"acbuy.com/showcase/internal/product"
)

const loadKey = "catalog"

// Source is the subset of product.Service the catalog needs.
type Source interface {
	GetAll(ctx context.Context) ([]product.Product, error)
	GetCampaign(ctx context.Context) ([]product.Product, error)
}

type Service struct {
	source Source
	group  singleflight.Group
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Load reads both tables concurrently and assembles them. Concurrent calls
// share one load; a caller whose ctx ends stops waiting without cancelling
// the others.
func (s *Service) Load(ctx context.Context) (Catalog, error) {
	ch := s.group.DoChan(loadKey, func() (any, error) {
		return s.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Catalog{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Catalog{}, res.Err
		}
		return res.Val.(Catalog), nil
	}
}

func (s *Service) load(ctx context.Context) (Catalog, error) {
	var all, promoted []product.Product

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.source.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		promoted, err = s.source.GetCampaign(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}

	return Assemble(all, promoted), nil
}
