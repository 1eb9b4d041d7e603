// Package songs embeds the built-in song catalog. Add a .chopro or
// .tab file here and rebuild to extend it; SONGS_DIR overrides the
// embedded set at runtime.
package songs

import "embed"

//go:embed *.chopro *.tab
var FS embed.FS
