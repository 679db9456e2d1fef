package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/cache2k25/registration-backend/internal/catalog"
	"github.com/cache2k25/registration-backend/internal/config"
	"github.com/cache2k25/registration-backend/internal/handler"
	"github.com/cache2k25/registration-backend/internal/middleware"
	"github.com/cache2k25/registration-backend/internal/payment"
	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/registration"
	"github.com/cache2k25/registration-backend/internal/repository"
	"github.com/cache2k25/registration-backend/internal/router"
	"github.com/cache2k25/registration-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	cat := catalog.New()

	ledger := repository.NewLedger(cfg.LedgerPath, cfg.RegPrefix)
	if err := ledger.Init(); err != nil {
		log.Fatalf("ledger init: %v", err)
	}
	log.Printf("ledger file at %s", ledger.Path())

	svc := &service.RegistrationService{
		Catalog:  cat,
		Builder:  registration.NewBuilder(cat),
		Verifier: payment.NewHMACVerifier(cfg.RazorpayKeySecret),
		Store:    ledger,
		Events:   service.NewAMQPPublisher(cfg.RabbitURL),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	h := router.Handlers{
		Events:       handler.NewEventHandler(cat),
		Orders:       handler.NewOrderHandler(payment.NewOrderService()),
		Payments:     handler.NewPaymentHandler(svc.Verifier),
		Registration: handler.NewRegistrationHandler(svc),
		Export:       handler.NewExportHandler(ledger, "cache2k25_registrations.xlsx"),
		Auth:         handler.NewAuthHandler(cfg),
	}
	router.RegisterRoutes(e, h)
	router.RegisterAdmin(e, h, cfg.JWTSecret)

	// Drain confirmation events into logs/registrations.log.  The consumer
	// reconnects forever on its own; losing the broker never blocks HTTP.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
