// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a settlement webhook
// confirms a reservation. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID     uint64 `json:"reservation_id"`
	UserID            uint64 `json:"user_id"`
	RoomID            uint64 `json:"room_id"`
	PaymentID         uint64 `json:"payment_id"`
	ExternalPaymentID string `json:"external_payment_id"`
	ProviderName      string `json:"provider_name"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	TotalAmount       uint32 `json:"total_amount"`
	ConfirmedAt       string `json:"confirmed_at"`
}
