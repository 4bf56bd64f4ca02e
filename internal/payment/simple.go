package payment

import (
	"context"
	"net/http"

	"github.com/iliyamo/room-reservation/internal/model"
)

// SimpleStrategy dispatches simple-pay payments (wallet style apps
// such as KAKAO_PAY) to the B Company gateway.
type SimpleStrategy struct {
	baseURL string
	client  *http.Client
}

func NewSimpleStrategy(baseURL string, client *http.Client) *SimpleStrategy {
	return &SimpleStrategy{baseURL: baseURL, client: client}
}

func (s *SimpleStrategy) Type() string { return model.ProviderSimplePayment }

func (s *SimpleStrategy) Pay(ctx context.Context, paymentID uint64, res *model.Reservation, req *Request) (*PendingResponse, error) {
	pr := &ProviderRequest{
		PaymentID:     formatID(paymentID),
		PaymentMethod: req.Method(),
		Amount:        req.Amount,
		MerchantID:    "B_COMPANY",
		ReservationID: formatID(res.ID),
		UserName:      req.UserName,
		PhoneNumber:   req.PhoneNumber,
		ProviderType:  model.ProviderSimplePayment,
	}
	ack, err := dispatch(ctx, s.client, s.baseURL+"/payment", pr)
	if err != nil {
		return nil, err
	}
	return &PendingResponse{
		PaymentID:         formatID(paymentID),
		ExternalPaymentID: ack.ExternalPaymentID,
		Message:           "B Company simple payment is in progress.",
		Status:            model.PaymentPending,
	}, nil
}
