package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"acbuy.com/showcase/internal/product"
)

// PriceFormatter renders prices with two decimals in a locale.
type PriceFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewPriceFormatter parses locale as a BCP 47 tag, falling back to English.
func NewPriceFormatter(locale, symbol string) *PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &PriceFormatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Amount formats the number without a currency symbol. Missing prices
// render as 0.00.
func (f *PriceFormatter) Amount(p product.Price) string {
	return f.printer.Sprintf("%.2f", p.Amount())
}

// Format prefixes Amount with the currency symbol.
func (f *PriceFormatter) Format(p product.Price) string {
	return f.symbol + f.Amount(p)
}
