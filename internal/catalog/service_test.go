package catalog_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"acbuy.com/showcase/internal/catalog"
	"acbuy.com/showcase/internal/product"
)

type stubSource struct {
	all, campaign []product.Product
	allErr        error
	gate          chan struct{}
	calls         atomic.Int32
}

func (s *stubSource) GetAll(ctx context.Context) ([]product.Product, error) {
	s.calls.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.all, s.allErr
}

func (s *stubSource) GetCampaign(ctx context.Context) ([]product.Product, error) {
	return s.campaign, nil
}

func TestServiceLoad(t *testing.T) {
	src := &stubSource{all: products("a", "b", "c"), campaign: products("c")}
	svc := catalog.NewService(src)

	c, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := ids(c.Remaining); !equal(got, []string{"a", "b"}) {
		t.Errorf("remaining = %v", got)
	}
	if f, ok := c.Featured(); !ok || f.ID != "c" {
		t.Errorf("featured = %q, %v", f.ID, ok)
	}
}

func TestServiceLoadError(t *testing.T) {
	boom := errors.New("products unavailable")
	svc := catalog.NewService(&stubSource{allErr: boom})

	if _, err := svc.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestServiceLoadCoalesces(t *testing.T) {
	src := &stubSource{all: products("a"), gate: make(chan struct{})}
	svc := catalog.NewService(src)

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Load(context.Background())
			errs <- err
		}()
	}

	// let every caller join the in-flight load before releasing it
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if n := src.calls.Load(); n != 1 {
		t.Errorf("expected one store read, got %d", n)
	}
}

func TestServiceLoadCallerCancels(t *testing.T) {
	src := &stubSource{all: products("a"), gate: make(chan struct{})}
	svc := catalog.NewService(src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	close(src.gate)
}
