package admin

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/handlers/common"
	"syng.no/allsang/cmd/web/internal/room"
)

// HandleRoomDelete tears down a room immediately instead of waiting for it
// to expire.
func HandleRoomDelete(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := common.RoomCode(c)
		if !hub.Delete(code) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
		}

		slog.Info("room deleted by admin", "code", code)
		return c.JSON(http.StatusOK, map[string]bool{"success": true})
	}
}
