package catalog

import (
	"context"
	"time"

	"acbuy.com/showcase/internal/product"
)

// Pager reveals a list in chunks: Initial items first, then Step more per
// request after Delay.
type Pager struct {
	Initial int
	Step    int
	Delay   time.Duration
}

// Page is one reveal. Items holds only the newly revealed products.
type Page struct {
	Items   []product.Product
	Visible int
	Total   int
}

// HasMore reports whether another reveal would add items.
func (p Page) HasMore() bool {
	return p.Visible < p.Total
}

// Clamp bounds a client-supplied visible count to [Initial, total].
func (p Pager) Clamp(visible, total int) int {
	if visible < p.Initial {
		visible = p.Initial
	}
	if visible > total {
		visible = total
	}
	return visible
}

// Next returns the visible count after one more reveal. It never shrinks
// and never exceeds total.
func (p Pager) Next(visible, total int) int {
	visible = p.Clamp(visible, total)
	step := p.Step
	if step < 1 {
		step = 1
	}
	if next := visible + step; next < total {
		return next
	}
	return total
}

// First returns the initial chunk.
func (p Pager) First(items []product.Product) Page {
	total := len(items)
	visible := p.Clamp(0, total)
	return Page{Items: items[:visible], Visible: visible, Total: total}
}

// More waits Delay and returns the chunk that follows visible. It returns
// ctx.Err() if ctx is done first.
func (p Pager) More(ctx context.Context, items []product.Product, visible int) (Page, error) {
	if p.Delay > 0 {
		t := time.NewTimer(p.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Page{}, ctx.Err()
		case <-t.C:
		}
	}

	total := len(items)
	from := p.Clamp(visible, total)
	to := p.Next(from, total)
	return Page{Items: items[from:to], Visible: to, Total: total}, nil
}
