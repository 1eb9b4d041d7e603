package rooms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/handlers/common"
	"syng.no/allsang/cmd/web/internal/room"
)

// Keepalive comment interval; keeps proxies and browsers from dropping
// an otherwise idle stream.
const keepaliveInterval = 15 * time.Second

// HandleStream bridges one subscriber to the room's update fan-out as a
// long-lived SSE connection: one `state` event with the current
// snapshot first, then an `update` event per state change. Unsubscribe
// and timer teardown run on every exit path via defer.
func HandleStream(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := common.RoomCode(c)

		st, ok := hub.Get(code)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
		}

		w := c.Response().Writer
		flusher, ok := w.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "streaming unsupported")
		}

		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache, no-transform")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		common.SetSSEHeaders(c)
		c.Response().WriteHeader(http.StatusOK)

		send := func(event string, st *room.State) error {
			b, err := json.Marshal(st)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		}

		// Initial full snapshot goes out before the subscription is
		// registered, so `state` always precedes any `update`.
		if err := send("state", st); err != nil {
			return nil
		}

		updates, unsubscribe := hub.Subscribe(code)
		defer unsubscribe()

		ticker := time.NewTicker(keepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case snap, ok := <-updates:
				if !ok {
					return nil
				}
				if err := send("update", snap); err != nil {
					return nil
				}
			case <-ticker.C:
				if _, err := fmt.Fprintf(w, ": keepalive\n\n"); err != nil {
					return nil
				}
				flusher.Flush()
			}
		}
	}
}
