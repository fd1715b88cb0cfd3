package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/booking"
	"github.com/lfarias/sports-booking-gateway/internal/cache"
	"github.com/lfarias/sports-booking-gateway/internal/config"
	"github.com/lfarias/sports-booking-gateway/internal/handler"
	"github.com/lfarias/sports-booking-gateway/internal/middleware"
	"github.com/lfarias/sports-booking-gateway/internal/queue"
	"github.com/lfarias/sports-booking-gateway/internal/router"
	queue_publisher "github.com/lfarias/sports-booking-gateway/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; caching and rate limiting disabled")
	}
	var store *cache.Store
	if cacheCfg.Enabled {
		store = cache.NewStore(rdb, cacheCfg.ReadTTL)
	} else {
		store = cache.NewStore(nil, 0)
	}
	bus := cache.NewBus(store)

	api := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	sessions := booking.NewSessionStore()
	events := queue_publisher.Publisher{}
	flow := booking.NewFlow(api, bus, events)

	// Background consumer: replays invalidations from other gateway
	// instances and appends the reservation log.
	go func() {
		if err := queue.StartReservationConsumer(bus); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewCatalogHandler(api, store), middleware.NewResponseCache(cacheCfg, rdb))
	router.RegisterBooking(e, handler.NewBookingHandler(api, sessions, flow), cfg.JWTSecret, middleware.NewRateLimit(rlCfg, rdb))
	router.RegisterReservations(e, handler.NewReservationHandler(api, store, bus, events), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(api, bus), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
