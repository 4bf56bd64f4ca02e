package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/model"
)

type stubStrategy struct{ typ string }

func (s *stubStrategy) Type() string { return s.typ }
func (s *stubStrategy) Pay(context.Context, uint64, *model.Reservation, *Request) (*PendingResponse, error) {
	return &PendingResponse{Status: model.PaymentPending}, nil
}

func newTestRegistry() *Registry {
	return NewRegistry(
		&stubStrategy{typ: model.ProviderCardPayment},
		&stubStrategy{typ: model.ProviderSimplePayment},
		&stubStrategy{typ: model.ProviderVirtualAccount},
	)
}

func TestRegistry_Resolve(t *testing.T) {
	r := newTestRegistry()

	s, err := r.Resolve(model.ProviderCardPayment)
	require.NoError(t, err)
	assert.Equal(t, model.ProviderCardPayment, s.Type())
}

func TestRegistry_Resolve_Unsupported(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Resolve("BANK_TRANSFER")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestRegistry_Resolve_IsCaseSensitive(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Resolve("card_payment")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	_, err = r.Resolve(" CARD_PAYMENT")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestRegistry_Supports(t *testing.T) {
	r := newTestRegistry()

	assert.True(t, r.Supports(model.ProviderSimplePayment))
	assert.False(t, r.Supports("simple_payment"))
	assert.False(t, r.Supports(""))
}

func TestRegistry_SupportedTypes(t *testing.T) {
	r := newTestRegistry()

	assert.Equal(t, []string{
		model.ProviderCardPayment,
		model.ProviderSimplePayment,
		model.ProviderVirtualAccount,
	}, r.SupportedTypes())
}

func TestNewRegistry_DuplicateTypePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(&stubStrategy{typ: "X"}, &stubStrategy{typ: "X"})
	})
}
