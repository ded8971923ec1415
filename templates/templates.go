// Package templates holds the storefront markup. Each exported function
// returns a templ.Component so handlers render pages and partials the same
// way.
package templates

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"

	vm "acbuy.com/showcase/internal/viewmodels"
)

//go:embed *.html
var files embed.FS

var views = template.Must(template.New("views").Funcs(template.FuncMap{
	"seq": func(n int) []struct{} { return make([]struct{}, n) },
}).ParseFS(files, "*.html"))

// Home is the full page with the catalog still loading.
func Home(p vm.Page) templ.Component {
	return templ.FromGoHTML(views.Lookup("home"), p)
}

// Catalog is the loaded catalog section.
func Catalog(c vm.Catalog) templ.Component {
	return templ.FromGoHTML(views.Lookup("catalog"), c)
}

// MoreProducts appends g's products to the grid and replaces the
// show-more control.
func MoreProducts(g vm.Grid) templ.Component {
	return templ.FromGoHTML(views.Lookup("more"), g)
}
