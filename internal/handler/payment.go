package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// PaymentHandler drives the payment lifecycle: initiation against a
// provider strategy and the status query. Settlement itself arrives
// later through the webhook handler; initiation only ever returns a
// PENDING or FAILED outcome.
type PaymentHandler struct {
	ReservationRepo *repository.ReservationRepo
	UserRepo        *repository.UserRepo
	PaymentRepo     *repository.PaymentRepo
	Registry        *payment.Registry
}

func NewPaymentHandler(reservationRepo *repository.ReservationRepo, userRepo *repository.UserRepo, paymentRepo *repository.PaymentRepo, registry *payment.Registry) *PaymentHandler {
	if reservationRepo == nil || userRepo == nil || paymentRepo == nil || registry == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{
		ReservationRepo: reservationRepo,
		UserRepo:        userRepo,
		PaymentRepo:     paymentRepo,
		Registry:        registry,
	}
}

// ProcessPayment handles POST /v1/reservations/:id/payment. The
// payment row is persisted PENDING before the provider is contacted,
// so a settlement webhook always finds a row to reconcile against. A
// strategy failure marks the payment FAILED and reports it as a
// business outcome, not a server fault.
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req payment.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !ValidPhoneNumber(req.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number format (expected 010-1234-5678)"})
	}
	if req.Amount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount is required"})
	}

	ctx := c.Request().Context()
	res, err := h.ReservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	user, err := h.UserRepo.GetByNameAndPhone(ctx, req.UserName, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}
	if user.ID != res.UserID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation does not belong to this user"})
	}
	if res.Status == model.ReservationConfirmed {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation is already paid"})
	}

	// Resolving first keeps an unsupported type from leaving a
	// stray payment row behind.
	strategy, err := h.Registry.Resolve(req.ProviderType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unsupported payment provider type"})
	}

	paymentID, err := h.PaymentRepo.Create(ctx, res.ID, req.Amount)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create payment"})
	}

	pending, err := strategy.Pay(ctx, paymentID, res, &req)
	if err != nil {
		log.Printf("payment: dispatch of payment %d to %s failed: %v", paymentID, req.ProviderType, err)
		if updErr := h.PaymentRepo.UpdateStatus(ctx, paymentID, model.PaymentFailed); updErr != nil {
			log.Printf("payment: marking payment %d FAILED: %v", paymentID, updErr)
		}
		msg := "An error occurred while processing the payment. Please try again."
		if errors.Is(err, payment.ErrProviderTimeout) {
			msg = "The payment provider did not respond in time. Please try again."
		}
		return c.JSON(http.StatusOK, echo.Map{
			"payment_id": strconv.FormatUint(paymentID, 10),
			"status":     model.PaymentFailed,
			"message":    msg,
		})
	}

	if err := h.PaymentRepo.UpdateExternalID(ctx, paymentID, pending.ExternalPaymentID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record external payment id"})
	}
	return c.JSON(http.StatusOK, pending)
}

// statusMessage returns the fixed, user-facing message for a payment
// status. SUCCESS is templated with the provider's display name.
func statusMessage(status, providerName string) string {
	switch status {
	case model.PaymentPending:
		return "Payment is in progress. Please wait a moment."
	case model.PaymentSuccess:
		return fmt.Sprintf("Payment completed successfully via %s.", providerName)
	case model.PaymentCancelled:
		return "The payment was cancelled."
	default:
		return "An error occurred while processing the payment. Please try again."
	}
}

// PaymentStatus handles POST /v1/payments/:id/status. Ownership runs
// through the reservation: the requester's (name, phone) must resolve
// to the reservation's owner.
func (h *PaymentHandler) PaymentStatus(c echo.Context) error {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var body struct {
		UserName    string `json:"user_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !ValidPhoneNumber(body.PhoneNumber) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone number format (expected 010-1234-5678)"})
	}

	ctx := c.Request().Context()
	pay, err := h.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment"})
	}
	user, err := h.UserRepo.GetByNameAndPhone(ctx, body.UserName, body.PhoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load user"})
	}
	res, err := h.ReservationRepo.GetByID(ctx, pay.ReservationID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	if user.ID != res.UserID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment does not belong to this user"})
	}

	providerName, err := h.PaymentRepo.ProviderName(ctx, pay.ProviderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment provider"})
	}

	externalID := ""
	if pay.ExternalPaymentID != nil {
		externalID = *pay.ExternalPaymentID
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id":      pay.ReservationID,
		"payment_id":          pay.ID,
		"external_payment_id": externalID,
		"status":              pay.Status,
		"provider_name":       providerName,
		"amount":              pay.Amount,
		"message":             statusMessage(pay.Status, providerName),
	})
}
