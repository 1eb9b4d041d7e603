package content

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/internal/room"
	"syng.no/allsang/cmd/web/prefs"
	"syng.no/allsang/static"
)

// HandleJoinPage renders the join form, pre-filled with the last room the
// visitor joined if the preference cookie is still around.
func HandleJoinPage(pm *prefs.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := static.FS.ReadFile("pages/join.html")
		if err != nil {
			return echo.ErrNotFound
		}

		last := ""
		if code, err := pm.LastRoom(c.Request()); err == nil {
			last = code
		}
		page := strings.ReplaceAll(string(body), "{{LAST_ROOM}}", last)
		return c.HTML(http.StatusOK, page)
	}
}

// HandleJoinSubmit validates the submitted room code and redirects to the
// control view. Unknown or expired rooms send the visitor back to the form.
func HandleJoinSubmit(hub *room.Hub, pm *prefs.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := strings.ToUpper(strings.TrimSpace(c.FormValue("code")))

		if _, ok := hub.Get(code); !ok {
			slog.Info("join attempt for unknown room", "code", code)
			return c.Redirect(http.StatusSeeOther, "/join")
		}

		if err := pm.SaveLastRoom(c.Response(), c.Request(), code); err != nil {
			slog.Warn("failed to save room preference", "error", err)
		}
		return c.Redirect(http.StatusSeeOther, "/control/"+code)
	}
}
