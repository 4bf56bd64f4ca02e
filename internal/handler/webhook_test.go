package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/repository"
)

func newWebhookTest(t *testing.T) (*WebhookHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewWebhookHandler(
		repository.NewPaymentRepo(db),
		repository.NewProviderRepo(db),
		repository.NewReservationRepo(db),
	), mock
}

func receiveWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments/CARD_PAYMENT", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("CARD_PAYMENT")
	require.NoError(t, h.Receive(c))
	return rec
}

func pendingPaymentRow(paymentID, reservationID uint64, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "payment_provider_id", "reservation_id", "amount", "status",
		"external_payment_id", "created_at", "updated_at",
	}).AddRow(paymentID, nil, reservationID, 3000, status, nil, now, now)
}

const settlementBody = `{
	"external_payment_id": "CARD_1A2B3C4D",
	"status":              "%STATUS%",
	"amount":              3000,
	"transaction_id":      "TXN_AB12CD34EF56",
	"message":             "Settlement completed.",
	"provider_name":       "KBCard",
	"api_endpoint":        "https://api.kbcard.example.com",
	"auth_info":           "kb-merchant-key",
	"provider_type":       "CARD_PAYMENT",
	"payment_id":          "42"
}`

func settlement(status string) string {
	return strings.ReplaceAll(settlementBody, "%STATUS%", status)
}

func TestWebhookSuccessConfirmsReservation(t *testing.T) {
	h, mock := newWebhookTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM payments WHERE id = \? FOR UPDATE`).
		WithArgs(42).
		WillReturnRows(pendingPaymentRow(42, 7, "PENDING"))
	mock.ExpectQuery(`FROM payment_providers WHERE name = \?`).
		WithArgs("KBCard").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "api_endpoint", "auth_info", "type"}).
			AddRow(5, "KBCard", "https://api.kbcard.example.com", "kb-merchant-key", "CARD_PAYMENT"))
	mock.ExpectExec(`UPDATE payments SET status = \?, payment_provider_id = \?`).
		WithArgs("SUCCESS", 5, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE reservations SET status = 'CONFIRMED'`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// The post-commit event load is outside the settlement contract;
	// failing it keeps the publisher out of the test.
	mock.ExpectQuery(`FROM reservations WHERE id = \?`).
		WillReturnError(sql.ErrConnDone)

	rec := receiveWebhook(t, h, settlement("SUCCESS"))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookFailureLeavesReservationAlone(t *testing.T) {
	for _, status := range []string{"FAILED", "CANCELLED"} {
		t.Run(status, func(t *testing.T) {
			h, mock := newWebhookTest(t)

			mock.ExpectBegin()
			mock.ExpectQuery(`FROM payments WHERE id = \? FOR UPDATE`).
				WithArgs(42).
				WillReturnRows(pendingPaymentRow(42, 7, "PENDING"))
			// First settlement from this provider: the name is unseen,
			// so the upsert inserts it.
			mock.ExpectQuery(`FROM payment_providers WHERE name = \?`).
				WithArgs("KBCard").
				WillReturnError(sql.ErrNoRows)
			mock.ExpectExec(`INSERT INTO payment_providers`).
				WithArgs("KBCard", "https://api.kbcard.example.com", "kb-merchant-key", "CARD_PAYMENT").
				WillReturnResult(sqlmock.NewResult(5, 1))
			mock.ExpectExec(`UPDATE payments SET status = \?, payment_provider_id = \?`).
				WithArgs(status, 5, 42).
				WillReturnResult(sqlmock.NewResult(0, 1))
			// No reservation update and no event publish may happen here.
			mock.ExpectCommit()

			rec := receiveWebhook(t, h, settlement(status))
			assert.Equal(t, http.StatusOK, rec.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWebhookUnknownPaymentIs404(t *testing.T) {
	h, mock := newWebhookTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM payments WHERE id = \? FOR UPDATE`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	rec := receiveWebhook(t, h, settlement("SUCCESS"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWebhookTerminalPaymentIsNoOp(t *testing.T) {
	for _, terminal := range []string{"SUCCESS", "FAILED", "CANCELLED"} {
		t.Run(terminal, func(t *testing.T) {
			h, mock := newWebhookTest(t)

			mock.ExpectBegin()
			mock.ExpectQuery(`FROM payments WHERE id = \? FOR UPDATE`).
				WithArgs(42).
				WillReturnRows(pendingPaymentRow(42, 7, terminal))
			// A redelivered settlement must not touch any row, whatever
			// status it now claims: the first settlement won.
			mock.ExpectRollback()

			rec := receiveWebhook(t, h, settlement("FAILED"))
			assert.Equal(t, http.StatusOK, rec.Code)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWebhookMalformedPaymentID(t *testing.T) {
	h, mock := newWebhookTest(t)

	// No statement may reach the database.
	rec := receiveWebhook(t, h, `{"payment_id":"not-a-number","status":"SUCCESS","provider_name":"KBCard"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
