package mockpay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/payment"
)

func TestRandomID(t *testing.T) {
	id := randomID("CARD_", 8)
	require.Len(t, id, len("CARD_")+8)
	assert.True(t, strings.HasPrefix(id, "CARD_"))
	for _, r := range id[len("CARD_"):] {
		assert.Contains(t, idAlphabet, string(r))
	}

	// Two draws colliding would mean the generator is broken.
	assert.NotEqual(t, randomID("TXN_", 12), randomID("TXN_", 12))
}

func TestConfigLookup(t *testing.T) {
	cfg, ok := Config("SIMPLE_PAYMENT")
	require.True(t, ok)
	assert.Equal(t, "TossPay", cfg.ProviderName)
	assert.Equal(t, "SIMPLE_", cfg.IDPrefix)

	_, ok = Config("simple_payment")
	assert.False(t, ok, "type keys are case-sensitive")
	_, ok = Config("GIFT_CARD")
	assert.False(t, ok)
}

func dispatchRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ProcessPayment(e.NewContext(req, rec)))
	return rec
}

func TestProcessPaymentUnknownProvider(t *testing.T) {
	h := NewHandler("http://localhost:0", time.Millisecond, nil)
	rec := dispatchRequest(t, h, `{"payment_id":"1","provider_type":"GIFT_CARD","amount":1000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessPaymentAcksAndSettles(t *testing.T) {
	got := make(chan Settlement, 1)
	var gotPath string
	receiver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var s Settlement
		require.NoError(t, json.NewDecoder(r.Body).Decode(&s))
		got <- s
		w.WriteHeader(http.StatusOK)
	}))
	defer receiver.Close()

	h := NewHandler(receiver.URL, 10*time.Millisecond, receiver.Client())
	rec := dispatchRequest(t, h,
		`{"payment_id":"42","payment_method":"1234-5678","amount":3000,"merchant_id":"A_COMPANY","reservation_id":"7","provider_type":"CARD_PAYMENT"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var ack payment.PendingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, "42", ack.PaymentID)
	assert.Equal(t, "PENDING", ack.Status)
	assert.True(t, strings.HasPrefix(ack.ExternalPaymentID, "CARD_"))
	assert.Equal(t, "KBCard payment received and pending settlement.", ack.Message)

	select {
	case s := <-got:
		assert.Equal(t, "/webhooks/payments/CARD_PAYMENT", gotPath)
		assert.Equal(t, "42", s.PaymentID)
		assert.Equal(t, "SUCCESS", s.Status)
		assert.Equal(t, uint32(3000), s.Amount)
		assert.Equal(t, ack.ExternalPaymentID, s.ExternalPaymentID)
		assert.Equal(t, "KBCard", s.ProviderName)
		assert.True(t, strings.HasPrefix(s.TransactionID, "TXN_"))
	case <-time.After(2 * time.Second):
		t.Fatal("settlement webhook never arrived")
	}
}
