package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/seatmap/internal/utils"
)

// WidgetTokenHeader carries the signed widget handle.
const WidgetTokenHeader = "X-Widget-Token"

// WidgetIDKey is the echo context key the verified widget id is stored under.
const WidgetIDKey = "widget_id"

// WidgetToken returns a middleware that verifies the widget handle sent in
// X-Widget-Token (or as a Bearer token) and stores its widget id in the
// context.  Requests without a valid handle get 401.
func WidgetToken(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := c.Request().Header.Get(WidgetTokenHeader)
            if raw == "" {
                if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
                    raw = strings.TrimPrefix(auth, "Bearer ")
                }
            }
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing widget token"})
            }
            wid, err := utils.ParseWidgetToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid widget token"})
            }
            c.Set(WidgetIDKey, wid)
            return next(c)
        }
    }
}
