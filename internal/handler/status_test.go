package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/room-reservation/internal/model"
)

func TestMapStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SUCCESS", model.PaymentSuccess},
		{"FAILED", model.PaymentFailed},
		{"CANCELLED", model.PaymentCancelled},
		{"success", model.PaymentFailed}, // case-sensitive, degrades
		{"REFUNDED", model.PaymentFailed},
		{"", model.PaymentFailed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mapStatus(tc.in), "status %q", tc.in)
	}
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Payment is in progress. Please wait a moment.",
		statusMessage(model.PaymentPending, ""))
	assert.Equal(t, "Payment completed successfully via TossPay.",
		statusMessage(model.PaymentSuccess, "TossPay"))
	assert.Equal(t, "An error occurred while processing the payment. Please try again.",
		statusMessage(model.PaymentFailed, ""))
	assert.Equal(t, "The payment was cancelled.",
		statusMessage(model.PaymentCancelled, ""))
}

func TestPaymentTerminal(t *testing.T) {
	assert.False(t, model.Terminal(model.PaymentPending))
	assert.True(t, model.Terminal(model.PaymentSuccess))
	assert.True(t, model.Terminal(model.PaymentFailed))
	assert.True(t, model.Terminal(model.PaymentCancelled))
}
