package payment

import (
	"context"
	"net/http"

	"github.com/iliyamo/room-reservation/internal/model"
)

// VirtualAccountStrategy dispatches virtual-account payments to the
// C Company gateway. The provider issues a one-off account number and
// settles once the transfer arrives.
type VirtualAccountStrategy struct {
	baseURL string
	client  *http.Client
}

func NewVirtualAccountStrategy(baseURL string, client *http.Client) *VirtualAccountStrategy {
	return &VirtualAccountStrategy{baseURL: baseURL, client: client}
}

func (s *VirtualAccountStrategy) Type() string { return model.ProviderVirtualAccount }

func (s *VirtualAccountStrategy) Pay(ctx context.Context, paymentID uint64, res *model.Reservation, req *Request) (*PendingResponse, error) {
	pr := &ProviderRequest{
		PaymentID:     formatID(paymentID),
		PaymentMethod: req.Method(),
		Amount:        req.Amount,
		MerchantID:    "C_COMPANY",
		ReservationID: formatID(res.ID),
		UserName:      req.UserName,
		PhoneNumber:   req.PhoneNumber,
		ProviderType:  model.ProviderVirtualAccount,
	}
	ack, err := dispatch(ctx, s.client, s.baseURL+"/payment", pr)
	if err != nil {
		return nil, err
	}
	return &PendingResponse{
		PaymentID:         formatID(paymentID),
		ExternalPaymentID: ack.ExternalPaymentID,
		Message:           "C Company virtual account payment is in progress.",
		Status:            model.PaymentPending,
	}, nil
}
