package web

import (
	"acbuy.com/showcase/internal/catalog"
	"acbuy.com/showcase/internal/product"
	vm "acbuy.com/showcase/internal/viewmodels"
)

// FromDomainProduct converts a product to its card. Missing links become
// the no-op target and a missing image the placeholder.
func FromDomainProduct(p product.Product, f *catalog.PriceFormatter) vm.ProductCard {
	card := vm.ProductCard{
		ID:           p.ID,
		Name:         p.Name,
		ImageURL:     orDefault(p.Image(), vm.PlaceholderImage),
		Price:        f.Format(p.CurrentPrice),
		PurchaseLink: orDefault(p.PurchaseLink, vm.NoopLink),
		InquiryLink:  orDefault(p.InquiryLink, vm.NoopLink),
	}
	if pct, ok := p.Discount(); ok {
		card.OriginalPrice = f.Format(p.OriginalPrice)
		card.Discount = pct
	}
	return card
}

// FromDomainProducts converts a slice of products to cards
func FromDomainProducts(products []product.Product, f *catalog.PriceFormatter) []vm.ProductCard {
	result := make([]vm.ProductCard, len(products))
	for i, p := range products {
		result[i] = FromDomainProduct(p, f)
	}
	return result
}

// FromPage converts one reveal of the grid.
func FromPage(page catalog.Page, f *catalog.PriceFormatter) vm.Grid {
	return vm.Grid{
		Products: FromDomainProducts(page.Items, f),
		Visible:  page.Visible,
		Total:    page.Total,
		HasMore:  page.HasMore(),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
