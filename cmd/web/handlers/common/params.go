package common

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// RoomCode extracts the :code route parameter, uppercased. Codes are
// case-insensitive on input but always rendered uppercase. Ill-shaped
// codes are not rejected here; they can never match a stored room, so
// lookups answer not-found like any other unknown code.
func RoomCode(c echo.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("code")))
}
