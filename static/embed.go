// Package static embeds the storefront's stylesheets and images.
package static

import "embed"

//go:embed css img
var Files embed.FS
