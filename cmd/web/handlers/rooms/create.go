// Package rooms exposes the room session API: create, fetch, command
// dispatch, controller registration and the live SSE stream.
package rooms

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"syng.no/allsang/cmd/web/internal/room"
)

// HandleCreate allocates a new room and returns its initial snapshot.
func HandleCreate(hub *room.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		st := hub.Create()
		slog.Info("room created", "code", st.Code)
		return c.JSON(http.StatusCreated, st)
	}
}
