package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/seatmap/internal/config"
	"github.com/iliyamo/seatmap/internal/database"
	"github.com/iliyamo/seatmap/internal/handler"
	"github.com/iliyamo/seatmap/internal/middleware"
	"github.com/iliyamo/seatmap/internal/queue"
	"github.com/iliyamo/seatmap/internal/repository"
	"github.com/iliyamo/seatmap/internal/router"
	"github.com/iliyamo/seatmap/internal/seatmap"
	queue_publisher "github.com/iliyamo/seatmap/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal(err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil when Redis is unreachable; cache and limiter then pass through
	seats := repository.NewSeatRepo(db)

	// Widgets read seats in-process unless an external seat API is configured.
	var src seatmap.Source = handler.InProcessSource{Seats: seats}
	if cfg.SeatAPIBaseURL != "" {
		src = seatmap.NewHTTPSource(cfg.SeatAPIBaseURL, cfg.SeatFetchTimeout, cfg.SeatFetchRetries)
		log.Printf("widgets fetch seats from %s", cfg.SeatAPIBaseURL)
	}

	var pub handler.SelectionPublisher
	if cfg.EventsEnabled {
		p := queue_publisher.NewPublisher(cfg.AMQPURL)
		defer p.Close()
		pub = p
		go queue.StartSelectionConsumer(cfg.AMQPURL) // audit trail in logs/selection.log
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover())

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterSeatAPI(e, handler.NewSeatAPIHandler(seats),
		limiter, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	widgets := handler.NewWidgetHandler(src, pub, cfg.WidgetSecret, cfg.WidgetTokenTTLMin)
	defer widgets.Close() // flush queued selection events before the publisher closes
	router.RegisterWidgets(e, widgets, cfg.WidgetSecret, limiter)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
