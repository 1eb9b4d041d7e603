package song_api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/internal/songbook"
)

// HandleGet returns a single parsed song by id.
func HandleGet(catalog *songbook.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		song, ok := catalog.Get(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Song not found"})
		}
		return c.JSON(http.StatusOK, song)
	}
}
