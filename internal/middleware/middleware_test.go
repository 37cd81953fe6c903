package middleware

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/seatmap/internal/config"
    "github.com/iliyamo/seatmap/internal/utils"
)

func newCtx(e *echo.Echo, method, target string) (echo.Context, *httptest.ResponseRecorder) {
    req := httptest.NewRequest(method, target, nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestCacheKeyDistinguishesVehicles(t *testing.T) {
    e := echo.New()
    cfg := config.CacheConfig{Prefix: "seatmap:cache", KeyStrategy: "url"}

    c1, _ := newCtx(e, http.MethodGet, "/api/seats/bus/1")
    c1.SetPath("/api/seats/:vehicle_type/:vehicle_id")
    c2, _ := newCtx(e, http.MethodGet, "/api/seats/bus/2")
    c2.SetPath("/api/seats/:vehicle_type/:vehicle_id")

    k1, k2 := cacheKeyFrom(cfg, c1), cacheKeyFrom(cfg, c2)
    if k1 == k2 {
        t.Fatalf("keys collide: %s", k1)
    }
    if !strings.HasPrefix(k1, "seatmap:cache:") {
        t.Fatalf("key %q lacks prefix", k1)
    }

    cfg.KeyStrategy = "route"
    if cacheKeyFrom(cfg, c1) != cacheKeyFrom(cfg, c2) {
        t.Fatal("route strategy should key on the pattern only")
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": []string{"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"seats":[]}`))
    if err != nil {
        t.Fatal(err)
    }
    cr, ok := decodePayload(bs)
    if !ok || cr.Status != http.StatusOK || string(cr.Body) != `{"seats":[]}` || cr.Header.Get("Content-Type") != "application/json" {
        t.Fatalf("decoded %+v %v", cr, ok)
    }
    if _, ok := decodePayload([]byte("garbage")); ok {
        t.Fatal("garbage payload should not decode")
    }
}

func TestBodyRecorderMarksOversize(t *testing.T) {
    rec := &bodyRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK, limit: 4}
    rec.Write([]byte("abc"))
    if rec.oversize || rec.buf.String() != "abc" {
        t.Fatalf("buf = %q oversize = %v", rec.buf.String(), rec.oversize)
    }
    rec.Write([]byte("de"))
    if !rec.oversize || rec.buf.Len() != 0 {
        t.Fatalf("buf = %q oversize = %v", rec.buf.String(), rec.oversize)
    }
}

func TestMiddlewaresPassThroughWithoutRedis(t *testing.T) {
    e := echo.New()
    called := 0
    h := func(c echo.Context) error { called++; return c.String(http.StatusOK, "ok") }

    chain := NewRedisCache(config.CacheConfig{Enabled: true}, nil)(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil)(h))
    c, rec := newCtx(e, http.MethodGet, "/api/seats/flight/1")
    if err := chain(c); err != nil {
        t.Fatal(err)
    }
    if called != 1 || rec.Code != http.StatusOK {
        t.Fatalf("called = %d, code = %d", called, rec.Code)
    }
    if rec.Header().Get("X-Cache") != "" {
        t.Fatal("disabled cache should not set X-Cache")
    }
}

func TestWidgetTokenMiddleware(t *testing.T) {
    e := echo.New()
    tok, err := utils.NewWidgetToken("secret", "w-1", 5)
    if err != nil {
        t.Fatal(err)
    }
    var seen string
    h := WidgetToken("secret")(func(c echo.Context) error {
        seen = widgetIdentity(c)
        return c.NoContent(http.StatusNoContent)
    })

    cases := []struct {
        name   string
        header string
        value  string
        code   int
    }{
        {"header", WidgetTokenHeader, tok.Token, http.StatusNoContent},
        {"bearer", "Authorization", "Bearer " + tok.Token, http.StatusNoContent},
        {"missing", "", "", http.StatusUnauthorized},
        {"invalid", WidgetTokenHeader, "nope", http.StatusUnauthorized},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            seen = ""
            c, rec := newCtx(e, http.MethodGet, "/v1/widgets/selection")
            if tc.header != "" {
                c.Request().Header.Set(tc.header, tc.value)
            }
            if err := h(c); err != nil {
                t.Fatal(err)
            }
            if rec.Code != tc.code {
                t.Fatalf("code = %d, want %d", rec.Code, tc.code)
            }
            if tc.code == http.StatusNoContent && seen != "w-1" {
                t.Fatalf("widget id = %q", seen)
            }
        })
    }
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    c, _ := newCtx(e, http.MethodPost, "/v1/widgets/toggle/3")
    c.SetPath("/v1/widgets/toggle/:seat_id")
    c.Request().Header.Set("X-Real-IP", "10.0.0.9")

    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
    if got := buildRateKey(cfg, c); got != "rl:ip:10.0.0.9:route:POST /v1/widgets/toggle/:seat_id" {
        t.Fatalf("key = %q", got)
    }
    cfg.KeyStrategy = "widget"
    if got := buildRateKey(cfg, c); got != "rl:widget:anon" {
        t.Fatalf("key = %q", got)
    }
    c.Set(WidgetIDKey, "w-9")
    if got := buildRateKey(cfg, c); got != "rl:widget:w-9" {
        t.Fatalf("key = %q", got)
    }
}

func TestParseBucketResult(t *testing.T) {
    res, err := parseBucketResult([]interface{}{int64(0), int64(0), int64(1500)})
    if err != nil {
        t.Fatal(err)
    }
    if res.allowed || res.remaining != 0 || retryAfterSeconds(res.retryAfter) != 2 {
        t.Fatalf("result = %+v", res)
    }
    res, err = parseBucketResult([]interface{}{int64(1), int64(41), int64(0)})
    if err != nil || !res.allowed || res.remaining != 41 {
        t.Fatalf("result = %+v, err = %v", res, err)
    }
    for _, bad := range []interface{}{"OK", []interface{}{int64(1)}, []interface{}{"1", int64(2), int64(3)}} {
        if _, err := parseBucketResult(bad); err == nil {
            t.Fatalf("%#v parsed", bad)
        }
    }
}
