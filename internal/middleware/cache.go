package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/seatmap/internal/config"
)

// cachedResponse is what a cache entry holds.  Body is base64 in JSON.
type cachedResponse struct {
    Status int         `json:"status"`
    Header http.Header `json:"header"`
    Body   []byte      `json:"body"`
}

// bodyRecorder tees the response body into buf until limit bytes have been
// seen; past that the response is marked oversize and never stored.
type bodyRecorder struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    limit    int
    oversize bool
}

func (r *bodyRecorder) WriteHeader(code int) {
    r.status = code
    r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
    if !r.oversize {
        if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
            r.oversize = true
            r.buf.Reset()
        } else {
            r.buf.Write(b)
        }
    }
    return r.ResponseWriter.Write(b)
}

// cacheKeyFrom hashes the request identity under cfg.Prefix.  "route" keys
// on the registered pattern and suits parameterless routes only; anything
// else keys on method, concrete path and query.
func cacheKeyFrom(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    var id string
    if strings.EqualFold(cfg.KeyStrategy, "route") {
        id = "route:" + c.Path()
    } else {
        id = r.Method + ":" + r.URL.Path + "?" + r.URL.RawQuery
    }
    return fmt.Sprintf("%s:%x", cfg.Prefix, sha1.Sum([]byte(id)))
}

func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    return json.Marshal(cachedResponse{Status: status, Header: header, Body: body})
}

func decodePayload(bs []byte) (cachedResponse, bool) {
    var cr cachedResponse
    if err := json.Unmarshal(bs, &cr); err != nil || cr.Status == 0 {
        return cachedResponse{}, false
    }
    return cr, true
}

// NewRedisCache serves repeated GETs of the seat inventory from Redis.
// Only 200 responses within cfg.MaxBodyBytes are stored, for cfg.TTL.
// Replies carry X-Cache: HIT or MISS.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }

    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 10 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }
            key := cacheKeyFrom(cfg, c)

            if bs, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
                if cr, ok := decodePayload(bs); ok {
                    return replay(c, cr)
                }
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = rec
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if rec.status != http.StatusOK || rec.oversize {
                return nil
            }

            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            payload, err := encodePayload(rec.status, hdr, rec.buf.Bytes())
            if err != nil {
                return nil
            }
            if err := rdb.Set(context.Background(), key, payload, ttl).Err(); err != nil {
                c.Logger().Warnf("[cache] store %s: %v", key, err)
            }
            return nil
        }
    }
}

func replay(c echo.Context, cr cachedResponse) error {
    h := c.Response().Header()
    for k, vals := range cr.Header {
        if strings.EqualFold(k, echo.HeaderContentLength) {
            continue
        }
        h[k] = append([]string(nil), vals...)
    }
    h.Set("X-Cache", "HIT")
    c.Response().WriteHeader(cr.Status)
    _, err := c.Response().Write(cr.Body)
    return err
}
