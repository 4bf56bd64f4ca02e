package model

// Provider type keys. These are the exact, case-sensitive strings a
// payment request must carry and a strategy reports from Type().
const (
	ProviderCardPayment    = "CARD_PAYMENT"
	ProviderSimplePayment  = "SIMPLE_PAYMENT"
	ProviderVirtualAccount = "VIRTUAL_ACCOUNT"
)

// PaymentProvider is a row in the `payment_providers` table. Rows
// are created lazily: the first settlement webhook referencing an
// unseen provider name inserts one, so provider metadata does not
// exist until first settlement.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique display name (e.g. the brand shown to users).
//  APIEndpoint – provider API base URL as reported by the webhook.
//  AuthInfo    – opaque auth material as reported by the webhook.
//  Type        – provider type key (see constants above).
type PaymentProvider struct {
	ID          uint64 // payment_providers.id
	Name        string // payment_providers.name
	APIEndpoint string // payment_providers.api_endpoint
	AuthInfo    string // payment_providers.auth_info
	Type        string // payment_providers.type
}
