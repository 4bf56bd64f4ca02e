package main // Provider simulator entry point

import (
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/mockpay"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadMockpay()

	h := mockpay.NewHandler(cfg.WebhookBaseURL, cfg.WebhookDelay, &http.Client{Timeout: 10 * time.Second})

	e := echo.New()
	e.POST("/payment", h.ProcessPayment)

	addr := ":" + cfg.Port
	log.Printf("mockpay listening on %s (webhooks -> %s, delay %s)", addr, cfg.WebhookBaseURL, cfg.WebhookDelay)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
