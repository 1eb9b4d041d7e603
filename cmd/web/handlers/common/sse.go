package common

import "github.com/labstack/echo/v4"

// SetSSEHeaders adds X-Accel-Buffering for nginx/reverse proxy compatibility.
// Content-Type, Cache-Control and Connection are set by the stream handlers
// themselves.
func SetSSEHeaders(c echo.Context) {
	c.Response().Header().Set("X-Accel-Buffering", "no")
}
