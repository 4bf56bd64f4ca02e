package mockpay

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/payment"
)

// Settlement is the webhook body posted back to the reservation
// server once the simulated provider settles a payment. PaymentID
// echoes the internal id from the dispatch request.
type Settlement struct {
	ExternalPaymentID string `json:"external_payment_id"`
	Status            string `json:"status"`
	Amount            uint32 `json:"amount"`
	TransactionID     string `json:"transaction_id"`
	Message           string `json:"message"`
	ProviderName      string `json:"provider_name"`
	APIEndpoint       string `json:"api_endpoint"`
	AuthInfo          string `json:"auth_info"`
	ProviderType      string `json:"provider_type"`
	PaymentID         string `json:"payment_id"`
}

// Handler serves the simulator's /payment endpoint and schedules the
// delayed settlement webhooks.
type Handler struct {
	webhookBaseURL string
	delay          time.Duration
	client         *http.Client
}

func NewHandler(webhookBaseURL string, delay time.Duration, client *http.Client) *Handler {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Handler{webhookBaseURL: webhookBaseURL, delay: delay, client: client}
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomID returns prefix plus n characters drawn from the uppercase
// alphanumeric alphabet.
func randomID(prefix string, n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	for i := range buf {
		buf[i] = idAlphabet[int(buf[i])%len(idAlphabet)]
	}
	return prefix + string(buf)
}

// ProcessPayment handles POST /payment. It acknowledges the dispatch
// synchronously with a generated external id and schedules exactly one
// settlement webhook on a separate goroutine.
func (h *Handler) ProcessPayment(c echo.Context) error {
	var req payment.ProviderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	cfg, ok := Config(req.ProviderType)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown provider type"})
	}

	externalID := randomID(cfg.IDPrefix, 8)
	transactionID := randomID("TXN_", 12)

	settlement := Settlement{
		ExternalPaymentID: externalID,
		Status:            "SUCCESS",
		Amount:            req.Amount,
		TransactionID:     transactionID,
		Message:           "Settlement completed.",
		ProviderName:      cfg.ProviderName,
		APIEndpoint:       cfg.APIEndpoint,
		AuthInfo:          cfg.AuthInfo,
		ProviderType:      req.ProviderType,
		PaymentID:         req.PaymentID,
	}
	go h.settleLater(settlement)

	return c.JSON(http.StatusOK, payment.PendingResponse{
		PaymentID:         req.PaymentID,
		ExternalPaymentID: externalID,
		Message:           cfg.Message,
		Status:            "PENDING",
	})
}

// settleLater waits out the settlement delay and posts the webhook.
// Runs outside any request context: the dispatch response has long
// been written by the time this fires.
func (h *Handler) settleLater(s Settlement) {
	time.Sleep(h.delay)

	body, err := json.Marshal(s)
	if err != nil {
		log.Printf("mockpay: marshal settlement for payment %s: %v", s.PaymentID, err)
		return
	}
	url := h.webhookBaseURL + "/webhooks/payments/" + s.ProviderType
	resp, err := h.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("mockpay: settlement webhook for payment %s failed: %v", s.PaymentID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("mockpay: settlement webhook for payment %s answered %d", s.PaymentID, resp.StatusCode)
		return
	}
	log.Printf("mockpay: payment %s settled via %s (%s)", s.PaymentID, s.ProviderName, s.TransactionID)
}
