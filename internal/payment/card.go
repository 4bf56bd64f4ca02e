package payment

import (
	"context"
	"net/http"

	"github.com/iliyamo/room-reservation/internal/model"
)

// CardStrategy dispatches card payments to the A Company gateway.
type CardStrategy struct {
	baseURL string
	client  *http.Client
}

func NewCardStrategy(baseURL string, client *http.Client) *CardStrategy {
	return &CardStrategy{baseURL: baseURL, client: client}
}

func (s *CardStrategy) Type() string { return model.ProviderCardPayment }

// Pay posts the card payment to the gateway and wraps its pending
// acknowledgement with the internal payment id and a card-specific
// progress message.
func (s *CardStrategy) Pay(ctx context.Context, paymentID uint64, res *model.Reservation, req *Request) (*PendingResponse, error) {
	pr := &ProviderRequest{
		PaymentID:     formatID(paymentID),
		PaymentMethod: req.Method(),
		Amount:        req.Amount,
		MerchantID:    "A_COMPANY",
		ReservationID: formatID(res.ID),
		UserName:      req.UserName,
		PhoneNumber:   req.PhoneNumber,
		ProviderType:  model.ProviderCardPayment,
	}
	ack, err := dispatch(ctx, s.client, s.baseURL+"/payment", pr)
	if err != nil {
		return nil, err
	}
	return &PendingResponse{
		PaymentID:         formatID(paymentID),
		ExternalPaymentID: ack.ExternalPaymentID,
		Message:           "A Company card payment is in progress.",
		Status:            model.PaymentPending,
	}, nil
}
