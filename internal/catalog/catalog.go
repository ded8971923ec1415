// Package catalog merges the product tables into what the storefront shows.
package catalog

import "acbuy.com/showcase/internal/product"

// Catalog splits the store into the promoted set and everything else.
type Catalog struct {
	Promoted  []product.Product `json:"promoted"`
	Remaining []product.Product `json:"remaining"`
}

// Assemble keeps promoted as is and drops every promoted id from all.
// Both lists keep their source order and are never nil.
func Assemble(all, promoted []product.Product) Catalog {
	ids := make(map[string]struct{}, len(promoted))
	for _, p := range promoted {
		ids[p.ID] = struct{}{}
	}

	remaining := make([]product.Product, 0, len(all))
	for _, p := range all {
		if _, ok := ids[p.ID]; ok {
			continue
		}
		remaining = append(remaining, p)
	}

	if promoted == nil {
		promoted = []product.Product{}
	}
	return Catalog{Promoted: promoted, Remaining: remaining}
}

// Featured returns the newest promoted product.
func (c Catalog) Featured() (product.Product, bool) {
	if len(c.Promoted) == 0 {
		return product.Product{}, false
	}
	return c.Promoted[0], true
}
