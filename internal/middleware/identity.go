package middleware

// identity.go holds the caller identity helper shared by the rate limiter.
// Seat map callers are anonymous; the closest thing to an identity is the
// widget handle verified by WidgetToken.

import "github.com/labstack/echo/v4"

// widgetIdentity returns the verified widget id, or "anon" before
// WidgetToken has run.
func widgetIdentity(c echo.Context) string {
    if v, ok := c.Get(WidgetIDKey).(string); ok && v != "" {
        return v
    }
    return "anon"
}
