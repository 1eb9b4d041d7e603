package rooms

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/handlers/common"
	"syng.no/allsang/cmd/web/internal/room"
)

// HandleCommand validates and dispatches one controller command.
// Bad input answers 400 with a reason, a vanished room answers 404, so
// controllers can tell "fix your request" from "your room expired".
func HandleCommand(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		code := common.RoomCode(c)

		var cmd room.Command
		dec := json.NewDecoder(c.Request().Body)
		if err := dec.Decode(&cmd); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		}

		st, err := hub.Apply(code, cmd)
		if err != nil {
			var cmdErr *room.CommandError
			switch {
			case errors.Is(err, room.ErrRoomNotFound):
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
			case errors.As(err, &cmdErr):
				return c.JSON(http.StatusBadRequest, map[string]string{"error": cmdErr.Reason})
			default:
				slog.Error("command dispatch failed", "code", code, "type", cmd.Type, "error", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Command failed"})
			}
		}

		return c.JSON(http.StatusOK, map[string]any{"success": true, "room": st})
	}
}
