// package song_api provides song catalog API handlers.
package song_api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/internal/songbook"
)

// HandleIndex returns the song index sorted for display.
func HandleIndex(catalog *songbook.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, catalog.Index())
	}
}
