package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/payment"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// throttleAll stands in for the token-bucket limiter and rejects
// everything it wraps, making it visible which routes sit behind it.
func throttleAll(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusTooManyRequests)
	}
}

func newTestRouter() *echo.Echo {
	roomRepo := repository.NewRoomRepo(nil)
	userRepo := repository.NewUserRepo(nil)
	reservationRepo := repository.NewReservationRepo(nil)
	paymentRepo := repository.NewPaymentRepo(nil)
	providerRepo := repository.NewProviderRepo(nil)

	rooms := handler.NewRoomHandler(roomRepo, reservationRepo)
	users := handler.NewUserHandler(userRepo)
	reservations := handler.NewReservationHandler(roomRepo, userRepo, reservationRepo, paymentRepo)
	payments := handler.NewPaymentHandler(reservationRepo, userRepo, paymentRepo, payment.NewRegistry())
	webhooks := handler.NewWebhookHandler(paymentRepo, providerRepo, reservationRepo)

	e := echo.New()
	RegisterRoutes(e)
	RegisterCatalog(e, rooms, users, nil, throttleAll)
	RegisterBooking(e, reservations, throttleAll)
	RegisterPayments(e, payments, webhooks, throttleAll)
	return e
}

func TestLimiterGuardsAPIRoutes(t *testing.T) {
	e := newTestRouter()
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/v1/rooms"},
		{http.MethodPost, "/v1/reservations"},
		{http.MethodPost, "/v1/reservations/1/payment"},
		{http.MethodPost, "/v1/payments/1/status"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestWebhookAndHealthBypassLimiter(t *testing.T) {
	e := newTestRouter()

	// The settlement webhook must never be throttled: the provider does
	// not retry a rejected notification. The malformed body proves the
	// handler itself ran.
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments/CARD_PAYMENT",
		strings.NewReader(`{"payment_id":"not-a-number"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
