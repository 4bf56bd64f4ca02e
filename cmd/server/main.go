package main // Entry point package

import (
	"log"      // Logging library
	"net/http" // Shared HTTP client for provider dispatch

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/database"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	roomRepo := repository.NewRoomRepo(db)
	userRepo := repository.NewUserRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	providerRepo := repository.NewProviderRepo(db)

	// One bounded client shared by every strategy; a provider that
	// never answers must not hold a request goroutine forever.
	payClient := &http.Client{Timeout: cfg.PayTimeout}
	registry := payment.NewRegistry(
		payment.NewCardStrategy(cfg.PayBaseURL, payClient),
		payment.NewSimpleStrategy(cfg.PayBaseURL, payClient),
		payment.NewVirtualAccountStrategy(cfg.PayBaseURL, payClient),
	)

	rooms := handler.NewRoomHandler(roomRepo, reservationRepo)
	users := handler.NewUserHandler(userRepo)
	reservations := handler.NewReservationHandler(roomRepo, userRepo, reservationRepo, paymentRepo)
	payments := handler.NewPaymentHandler(reservationRepo, userRepo, paymentRepo, registry)
	webhooks := handler.NewWebhookHandler(paymentRepo, providerRepo, reservationRepo)

	e := echo.New()

	// Redis backs the token-bucket rate limiter and the response
	// cache; both degrade to pass-through when it is unreachable.
	// The limiter guards the /v1 API only: the settlement webhook
	// must never answer 429, providers do not retry.
	rdb := config.NewRedisClient()
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, rooms, users, rdb, limit)
	router.RegisterBooking(e, reservations, limit)
	router.RegisterPayments(e, payments, webhooks, limit)

	// Background consumer for reservation.confirmed events.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
