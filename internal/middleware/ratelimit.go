package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/seatmap/internal/config"
)

// tokenBucket refills and takes one token atomically.
// KEYS[1] bucket; ARGV now_ms, capacity, refill, interval_ms, ttl_s.
// Returns {allowed, remaining, retry_after_ms}.
var tokenBucket = redis.NewScript(`
local now = tonumber(ARGV[1])
local cap = tonumber(ARGV[2])
local refill = tonumber(ARGV[3])
local interval = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local b = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(b[1]) or cap
local ts = tonumber(b[2]) or now

if interval > 0 and refill > 0 and now > ts then
  local n = math.floor((now - ts) / interval)
  if n > 0 then
    tokens = math.min(cap, tokens + n * refill)
    ts = ts + n * interval
  end
end

local allowed, wait = 0, 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  wait = math.max(0, interval - (now - ts))
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'ts', ts)
redis.call('EXPIRE', KEYS[1], ttl)
return {allowed, tokens, wait}
`)

// bucketResult is the decoded reply of tokenBucket.
type bucketResult struct {
    allowed    bool
    remaining  int64
    retryAfter time.Duration
}

func parseBucketResult(v interface{}) (bucketResult, error) {
    arr, ok := v.([]interface{})
    if !ok || len(arr) != 3 {
        return bucketResult{}, fmt.Errorf("unexpected reply %#v", v)
    }
    nums := make([]int64, 3)
    for i, x := range arr {
        n, ok := x.(int64)
        if !ok {
            return bucketResult{}, fmt.Errorf("reply item %d is %T", i, x)
        }
        nums[i] = n
    }
    return bucketResult{
        allowed:    nums[0] == 1,
        remaining:  nums[1],
        retryAfter: time.Duration(nums[2]) * time.Millisecond,
    }, nil
}

// retryAfterSeconds rounds d up to whole seconds for the Retry-After header.
func retryAfterSeconds(d time.Duration) int {
    if d <= 0 {
        return 0
    }
    return int((d + time.Second - 1) / time.Second)
}

// NewTokenBucket limits requests per key (see buildRateKey) with a token
// bucket stored in Redis.  Without Redis, or when the script fails,
// requests pass through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    limit := strconv.Itoa(cfg.Capacity)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := buildRateKey(cfg, c)
            reply, err := tokenBucket.Run(c.Request().Context(), rdb, []string{key},
                time.Now().UnixMilli(),
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                int64(cfg.TTL/time.Second),
            ).Result()
            if err != nil {
                c.Logger().Warnf("[ratelimit] %s: %v", key, err)
                return next(c)
            }
            res, err := parseBucketResult(reply)
            if err != nil {
                c.Logger().Warnf("[ratelimit] %s: %v", key, err)
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", limit)
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))
            if cfg.Debug {
                h.Set("X-RateLimit-Key", key)
            }
            if !res.allowed {
                secs := retryAfterSeconds(res.retryAfter)
                h.Set("Retry-After", strconv.Itoa(secs))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":       "rate limit exceeded",
                    "retry_after": secs,
                })
            }
            return next(c)
        }
    }
}

// buildRateKey names the bucket a request draws from.  Strategies: ip,
// widget, route, ip_widget, ip_widget_route and the default ip_route.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    wid := widgetIdentity(c)
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "widget":
        parts = append(parts, "widget", wid)
    case "route":
        parts = append(parts, "route", route)
    case "ip_widget":
        parts = append(parts, "ip", ip, "widget", wid)
    case "ip_widget_route":
        parts = append(parts, "ip", ip, "widget", wid, "route", route)
    default:
        parts = append(parts, "ip", ip, "route", route)
    }
    return strings.Join(parts, ":")
}
