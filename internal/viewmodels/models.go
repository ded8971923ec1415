package viewmodels

// NoopLink is the target used when a link is not configured.
const NoopLink = "#"

// PlaceholderImage is shown for products without an image.
const PlaceholderImage = "/static/img/placeholder-product.svg"

// ProductCard is one tile of the recommended grid.
type ProductCard struct {
	ID            string
	Name          string
	ImageURL      string
	Price         string
	OriginalPrice string // empty unless discounted
	Discount      int    // percent off, 0 when not discounted
	PurchaseLink  string
	InquiryLink   string
}

// Discounted reports whether the card shows a strike-through price and badge.
func (p ProductCard) Discounted() bool {
	return p.OriginalPrice != ""
}

// Featured is the hero panel. Product is nil when nothing is promoted.
type Featured struct {
	Title    string
	Headline string
	Badge    string
	Button   string
	AppLink  string
	Product  *ProductCard
}

// Grid is one reveal of the recommended products.
type Grid struct {
	Products []ProductCard
	Visible  int
	Total    int
	HasMore  bool
}

// Community is the call-to-action panel. It is hidden when URL is empty.
type Community struct {
	Title  string
	Text   string
	Button string
	URL    string
}

// Catalog is the loaded state of the catalog section.
type Catalog struct {
	Featured Featured
	Grid     Grid
}

// Page is the storefront shell shown while the catalog loads.
type Page struct {
	Title     string
	Version   string
	Skeletons int
	Community Community
}
