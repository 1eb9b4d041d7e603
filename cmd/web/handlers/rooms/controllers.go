package rooms

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/handlers/common"
	"syng.no/allsang/cmd/web/internal/room"
)

// HandleRegisterController assigns an opaque id to a joining controller
// and records it on the room. Purely informational for now; commands
// are accepted from anyone who knows the code.
func HandleRegisterController(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := common.RoomCode(c)

		id := uuid.NewString()
		st, ok := hub.AddController(code, id)
		if !ok {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
		}

		slog.Info("controller registered", "code", code, "controller_id", id)
		return c.JSON(http.StatusCreated, map[string]any{"controllerId": id, "room": st})
	}
}
