package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const CtxRequestIDKey = "request_id" // string

// X-Request-IDが無ければUUIDを発行し、contextにも保存する。
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(CtxRequestIDKey, id)
		},
	})
}

// RequestIDFrom returns the id stored by RequestID, or "".
func RequestIDFrom(c echo.Context) string {
	id, _ := c.Get(CtxRequestIDKey).(string)
	return id
}
