// Package static embeds the web assets: page shells under pages/ and
// stylesheets/scripts under dist/.
package static

import "embed"

//go:embed all:dist all:pages all:content
var FS embed.FS
