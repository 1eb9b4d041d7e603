package rooms

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/handlers/common"
	"syng.no/allsang/cmd/web/internal/room"
)

// HandleGet returns the current snapshot. The read extends the room's
// TTL lease.
func HandleGet(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, ok := hub.Get(common.RoomCode(c))
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
		}
		return c.JSON(http.StatusOK, st)
	}
}
