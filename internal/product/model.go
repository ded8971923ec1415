package product

import (
	"math"
	"time"
)

type Product struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	OriginalPrice Price     `db:"original_price" json:"original_price"`
	CurrentPrice  Price     `db:"current_price" json:"current_price"`
	ImageURL      *string   `db:"image_url" json:"image_url"`
	PurchaseLink  string    `db:"purchase_link" json:"purchase_link"`
	InquiryLink   string    `db:"inquiry_link" json:"inquiry_link"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	IsRecommended bool      `db:"is_recommended" json:"is_recommended"`
}

// Discount returns the rounded percentage off the original price. ok is
// false unless the original price is strictly greater than the current one.
func (p Product) Discount() (percent int, ok bool) {
	original := p.OriginalPrice.Amount()
	current := p.CurrentPrice.Amount()
	if original <= 0 || original <= current {
		return 0, false
	}
	return int(math.Round((original - current) / original * 100)), true
}

// Image returns the image URL or an empty string.
func (p Product) Image() string {
	if p.ImageURL == nil {
		return ""
	}
	return *p.ImageURL
}
