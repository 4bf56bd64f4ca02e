// Package payment contains the provider dispatch layer: one Strategy
// per provider type, a Registry that resolves them by type key, and
// the wire types shared with the provider side.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/iliyamo/room-reservation/internal/model"
)

// ErrUnsupportedProvider is returned by Registry.Resolve when no
// strategy is registered for the requested provider type.
var ErrUnsupportedProvider = errors.New("unsupported payment provider type")

// ErrProviderTimeout is returned when a provider does not answer a
// dispatch call within the configured deadline. It is distinct from a
// provider-reported failure so callers can tell the two apart.
var ErrProviderTimeout = errors.New("payment provider request timed out")

// Request carries the client's payment initiation fields. Exactly one
// of the method fields is relevant depending on ProviderType.
type Request struct {
	ProviderType  string `json:"provider_type"`
	Amount        uint32 `json:"amount"`
	UserName      string `json:"user_name"`
	PhoneNumber   string `json:"phone_number"`
	CardNumber    string `json:"card_number,omitempty"`
	SimplePayType string `json:"simple_pay_type,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
}

// Method returns the provider-specific payment method field for the
// request's provider type, or "" when the type is unknown.
func (r *Request) Method() string {
	switch r.ProviderType {
	case model.ProviderCardPayment:
		return r.CardNumber
	case model.ProviderSimplePayment:
		return r.SimplePayType
	case model.ProviderVirtualAccount:
		return r.AccountNumber
	}
	return ""
}

// PendingResponse is the synchronous acknowledgement of a dispatched
// payment: the provider has accepted the request and will settle it
// out-of-band later. Status is always "PENDING" on the success path.
type PendingResponse struct {
	PaymentID         string `json:"payment_id"`
	ExternalPaymentID string `json:"external_payment_id"`
	Message           string `json:"message"`
	Status            string `json:"status"`
}

// ProviderRequest is the provider-generic shape posted to a provider's
// /payment endpoint. PaymentID is the internal payment id the provider
// must echo back in its settlement webhook; it is the join key that
// resolves the anonymous notification to local state.
type ProviderRequest struct {
	PaymentID     string `json:"payment_id"`
	PaymentMethod string `json:"payment_method"`
	Amount        uint32 `json:"amount"`
	MerchantID    string `json:"merchant_id"`
	ReservationID string `json:"reservation_id"`
	UserName      string `json:"user_name"`
	PhoneNumber   string `json:"phone_number"`
	ProviderType  string `json:"provider_type"`
}

// Strategy initiates a provisional payment with one specific provider.
// Pay must return the provider's pending acknowledgement without
// waiting for settlement.
type Strategy interface {
	Pay(ctx context.Context, paymentID uint64, res *model.Reservation, req *Request) (*PendingResponse, error)
	Type() string
}

// dispatch posts a ProviderRequest to url and decodes the pending
// acknowledgement. Timeouts are reported as ErrProviderTimeout; every
// other transport or decoding problem is wrapped as a provider error.
func dispatch(ctx context.Context, client *http.Client, url string, pr *ProviderRequest) (*PendingResponse, error) {
	body, err := json.Marshal(pr)
	if err != nil {
		return nil, fmt.Errorf("provider request marshal: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("provider request build: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var pending PendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		return nil, fmt.Errorf("provider response decode: %w", err)
	}
	if pending.ExternalPaymentID == "" {
		return nil, errors.New("provider response missing external payment id")
	}
	return &pending, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }
