// package admin provides the live room monitor.
package admin

import (
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"syng.no/allsang/cmd/web/internal/room"
)

const refreshInterval = 2 * time.Second

// HandleRoomsStream pushes the active-rooms table to the monitor page over
// SSE, re-rendering it on a fixed interval until the client disconnects.
func HandleRoomsStream(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		sse := datastar.NewSSE(c.Response().Writer, c.Request())

		patch := func() error {
			return sse.PatchElements(
				renderRoomsBody(hub.List()),
				datastar.WithSelectorID("rooms-tbody"),
				datastar.WithModeReplace(),
			)
		}

		if err := patch(); err != nil {
			slog.Error("failed to patch rooms table", "error", err)
			return nil
		}

		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := patch(); err != nil {
					slog.Debug("rooms monitor client gone", "error", err)
					return nil
				}
			}
		}
	}
}

func renderRoomsBody(rooms []room.Overview) string {
	var b strings.Builder
	b.WriteString(`<tbody id="rooms-tbody">`)

	if len(rooms) == 0 {
		b.WriteString(`<tr><td colspan="7" class="muted">Ingen aktive rom</td></tr>`)
	}

	for _, r := range rooms {
		song := "–"
		if r.CurrentSong != nil {
			song = html.EscapeString(*r.CurrentSong)
		}
		fmt.Fprintf(&b,
			`<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td><td>%s</td>`+
				`<td><button class="danger" data-delete-room="%s">Fjern</button></td></tr>`,
			html.EscapeString(r.Code),
			song,
			r.Subscribers,
			r.Controllers,
			humanize.Time(time.UnixMilli(r.CreatedAt)),
			humanize.Time(time.UnixMilli(r.LastActivity)),
			html.EscapeString(r.Code),
		)
	}

	b.WriteString(`</tbody>`)
	return b.String()
}
