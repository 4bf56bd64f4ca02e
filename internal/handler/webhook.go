package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/room-reservation/internal/service"
)

// WebhookPayment is the settlement notification a provider posts back.
// PaymentID is the internal payment id echoed from the dispatch
// request; it is the join key that resolves this anonymous third-party
// notification to local state.
type WebhookPayment struct {
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

// mapStatus translates a provider status string into the internal
// payment status. Unrecognized strings degrade to FAILED with a logged
// warning instead of being rejected, so an unseen provider vocabulary
// never bounces a settlement.
func mapStatus(s string) string {
	switch s {
	case "SUCCESS":
		return model.PaymentSuccess
	case "FAILED":
		return model.PaymentFailed
	case "CANCELLED":
		return model.PaymentCancelled
	default:
		log.Printf("webhook: unknown provider status %q, treating as FAILED", s)
		return model.PaymentFailed
	}
}

// WebhookHandler reconciles settlement notifications. It runs in its
// own transaction, independent of the one that created the payment:
// the notification arrives well after the booking flow committed and
// must not depend on any of its state beyond the durable payment row.
type WebhookHandler struct {
	PaymentRepo     *repository.PaymentRepo
	ProviderRepo    *repository.ProviderRepo
	ReservationRepo *repository.ReservationRepo
}

func NewWebhookHandler(paymentRepo *repository.PaymentRepo, providerRepo *repository.ProviderRepo, reservationRepo *repository.ReservationRepo) *WebhookHandler {
	if paymentRepo == nil || providerRepo == nil || reservationRepo == nil {
		panic("nil dependency passed to NewWebhookHandler")
	}
	return &WebhookHandler{
		PaymentRepo:     paymentRepo,
		ProviderRepo:    providerRepo,
		ReservationRepo: reservationRepo,
	}
}

// Receive handles POST /webhooks/payments/:provider. A notification
// for an unknown payment is answered 404 so the delivery layer can
// decide on retry; a notification for an already settled payment is an
// idempotent no-op. Iff the reconciled status is SUCCESS the owning
// reservation is confirmed in the same transaction.
func (h *WebhookHandler) Receive(c echo.Context) error {
	providerType := c.Param("provider")
	var body WebhookPayment
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid webhook body"})
	}
	paymentID, err := strconv.ParseUint(body.PaymentID, 10, 64)
	if err != nil || paymentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed payment id"})
	}

	ctx := c.Request().Context()
	tx, err := h.PaymentRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	pay, err := h.PaymentRepo.GetByIDTx(ctx, tx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment"})
	}
	if model.Terminal(pay.Status) {
		// Redelivered or duplicate notification; the first one won.
		return c.JSON(http.StatusOK, echo.Map{"message": "OK"})
	}

	provider, err := h.ProviderRepo.UpsertByNameTx(ctx, tx, &model.PaymentProvider{
		Name:        body.ProviderName,
		APIEndpoint: body.APIEndpoint,
		AuthInfo:    body.AuthInfo,
		Type:        body.ProviderType,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve payment provider"})
	}

	status := mapStatus(body.Status)
	if err := h.PaymentRepo.UpdateStatusAndProviderTx(ctx, tx, pay.ID, status, provider.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment"})
	}
	if status == model.PaymentSuccess {
		if err := h.ReservationRepo.ConfirmTx(ctx, tx, pay.ReservationID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm reservation"})
		}
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	log.Printf("webhook: payment %d settled %s via %s (%s)", pay.ID, status, body.ProviderName, providerType)
	if status == model.PaymentSuccess {
		h.publishConfirmed(pay.ID, pay.ReservationID, body)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OK"})
}

// publishConfirmed emits the reservation.confirmed event after the
// transaction committed. Best-effort: a broker failure never undoes a
// settled payment.
func (h *WebhookHandler) publishConfirmed(paymentID, reservationID uint64, body WebhookPayment) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := h.ReservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		log.Printf("webhook: load reservation %d for event: %v", reservationID, err)
		return
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID:     res.ID,
		UserID:            res.UserID,
		RoomID:            res.RoomID,
		PaymentID:         paymentID,
		ExternalPaymentID: body.ExternalPaymentID,
		ProviderName:      body.ProviderName,
		StartTime:         res.StartTime.UTC().Format(time.RFC3339),
		EndTime:           res.EndTime.UTC().Format(time.RFC3339),
		TotalAmount:       res.TotalAmount,
		ConfirmedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		log.Printf("webhook: publish reservation.confirmed for %d: %v", reservationID, err)
	}
}
