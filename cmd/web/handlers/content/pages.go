// package content serves the HTML pages of the site from the embedded assets.
package content

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/static"
)

func servePage(c echo.Context, name string) error {
	body, err := static.FS.ReadFile("pages/" + name)
	if err != nil {
		return echo.ErrNotFound
	}
	return c.HTMLBlob(http.StatusOK, body)
}

// HandleHomePage renders the landing page; the song list is loaded
// client-side from /api/songs.
func HandleHomePage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return servePage(c, "home.html")
	}
}

// HandleDisplayPage renders the shared-screen view for a room.
func HandleDisplayPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return servePage(c, "display.html")
	}
}

// HandleControlPage renders the remote-control view for a room.
func HandleControlPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return servePage(c, "control.html")
	}
}

// HandleSongPage renders a standalone song view.
func HandleSongPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return servePage(c, "song.html")
	}
}

// HandleAdminRoomsPage renders the live room monitor.
func HandleAdminRoomsPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return servePage(c, "admin-rooms.html")
	}
}
