package main // Entry point package

import (
	"log"  // Logging library
	"time" // Timezone loading

	"github.com/joho/godotenv" // .env loading for local development
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/booking"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/database"
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/notifier"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-table-booking/internal/service"
	"github.com/iliyamo/restaurant-table-booking/internal/timeslot"
)

func main() {
	_ = godotenv.Load() // missing .env is fine, env vars may be set directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if cfg.AutoSetupDB {
		if err := database.EnsureSchema(db); err != nil {
			log.Fatalf("database: schema setup: %v", err)
		}
	}

	loc, err := time.LoadLocation(cfg.Shop.Timezone)
	if err != nil {
		log.Fatalf("invalid SHOP_TIMEZONE %q: %v", cfg.Shop.Timezone, err)
	}

	rules := booking.Rules{
		Schedule: timeslot.Schedule{
			Open:    cfg.Shop.Open,
			Close:   cfg.Shop.Close,
			StepMin: cfg.Shop.StepMin,
			Cutoff:  cfg.Shop.Cutoff,
			Loc:     loc,
		},
		MinNameLen:   cfg.Shop.MinNameLen,
		MinParty:     cfg.Shop.MinParty,
		MaxParty:     cfg.Shop.MaxParty,
		MaxPerSlot:   cfg.Shop.MaxPerSlot,
		CutoffNotice: cfg.Shop.CutoffNotice,
	}

	var ntf notifier.Notifier
	if cfg.SMTP.Configured() {
		ntf = notifier.NewSMTP(cfg.SMTP, cfg.Shop.Name)
	} else {
		log.Println("smtp not configured, confirmation email disabled")
	}

	h := handler.NewBookingHandler(repository.NewBookingRepo(db), rules, cfg.Shop, ntf, cfg.Env == "local")
	h.Publish = queue_publisher.PublishBookingCreated

	// Redis is optional: without it the limiter and cache become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Background consumer appends booking.created events to logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, h, rateLimit, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
