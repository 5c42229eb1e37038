package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID is the response header carrying the request identifier.
const HeaderRequestID = "X-Request-Id"

// RequestID assigns every request an identifier, reusing the caller's when
// one is supplied. The id is stored on the echo context for the logger and
// echoed back in the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.New().String()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}
