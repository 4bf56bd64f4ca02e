package model

import "time"

// Payment statuses. A payment is created PENDING before dispatch
// and is moved to exactly one terminal state (SUCCESS, FAILED or
// CANCELLED) by the webhook reconciliation handler. Terminal states
// never transition again.
const (
	PaymentPending   = "PENDING"
	PaymentSuccess   = "SUCCESS"
	PaymentFailed    = "FAILED"
	PaymentCancelled = "CANCELLED"
)

// Terminal reports whether a payment status is final.
func Terminal(status string) bool {
	switch status {
	case PaymentSuccess, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Payment is the provisional payment row created for a reservation
// before the provider is contacted. The provider reference and the
// external payment id are unknown at creation time: the external id
// is filled in from the provider's synchronous acknowledgement, and
// the provider row itself only comes into existence when the first
// settlement webhook names it.
//
// Fields:
//  ID                – primary key identifier.
//  ProviderID        – payment provider, nil until reconciliation.
//  ReservationID     – reservation this payment settles.
//  Amount            – amount charged.
//  Status            – state of the payment (see constants above).
//  ExternalPaymentID – provider-assigned id, nil until dispatch ack.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Payment struct {
	ID                uint64    // payments.id
	ProviderID        *uint64   // payments.payment_provider_id (nullable)
	ReservationID     uint64    // payments.reservation_id
	Amount            uint32    // payments.amount
	Status            string    // payments.status
	ExternalPaymentID *string   // payments.external_payment_id (nullable)
	CreatedAt         time.Time // payments.created_at
	UpdatedAt         time.Time // payments.updated_at
}
