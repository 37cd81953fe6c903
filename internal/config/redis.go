package config

// Redis backs the seat inventory response cache and the rate limiter.  When
// the server cannot be reached both middlewares degrade to pass-through.

import (
    "context"
    "crypto/tls"
    "log"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from the environment:
//   REDIS_ADDR (host:port) or REDIS_HOST + REDIS_PORT, default localhost:6379
//   REDIS_PASSWORD, REDIS_DB (default 0), REDIS_TLS ("true" or "1")
func RedisOptions() *redis.Options {
    addr := envStr("REDIS_ADDR", "")
    if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    opts := &redis.Options{
        Addr:     addr,
        Password: envStr("REDIS_PASSWORD", ""),
        DB:       envInt("REDIS_DB", 0),
    }
    if v := envStr("REDIS_TLS", ""); strings.EqualFold(v, "true") || v == "1" {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return opts
}

// NewRedisClient connects with RedisOptions and pings the server.  It
// returns nil when the server does not answer within two seconds.
func NewRedisClient() *redis.Client {
    opts := RedisOptions()
    client := redis.NewClient(opts)
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        log.Printf("redis: %s unreachable, cache and rate limit disabled: %v", opts.Addr, err)
        _ = client.Close()
        return nil
    }
    return client
}
