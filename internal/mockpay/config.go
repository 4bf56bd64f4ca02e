// Package mockpay implements the external payment provider simulator.
// It accepts the provider-generic dispatch request, acknowledges it as
// PENDING, and after a fixed delay posts a settlement webhook back to
// the reservation server from a separate goroutine, reproducing the
// asynchronous settlement boundary of a real gateway.
package mockpay

// ProviderConfig describes one simulated provider: how its external
// ids look, what it says while a payment is in flight, and the
// metadata it reports about itself in the settlement webhook.
type ProviderConfig struct {
	IDPrefix     string
	Message      string
	APIEndpoint  string
	ProviderName string
	AuthInfo     string
}

// providerConfigs is keyed by provider type. Built once at package
// init and never mutated afterwards; handlers share it by reference.
var providerConfigs = map[string]ProviderConfig{
	"CARD_PAYMENT": {
		IDPrefix:     "CARD_",
		Message:      "KBCard payment received and pending settlement.",
		APIEndpoint:  "https://api.kbcard.example.com",
		ProviderName: "KBCard",
		AuthInfo:     "kb-merchant-key",
	},
	"SIMPLE_PAYMENT": {
		IDPrefix:     "SIMPLE_",
		Message:      "TossPay payment received and pending settlement.",
		APIEndpoint:  "https://api.tosspay.example.com",
		ProviderName: "TossPay",
		AuthInfo:     "toss-merchant-key",
	},
	"VIRTUAL_ACCOUNT": {
		IDPrefix:     "VIRTUAL_",
		Message:      "ShinhanBank virtual account issued and pending deposit.",
		APIEndpoint:  "https://api.shinhanbank.example.com",
		ProviderName: "ShinhanBank",
		AuthInfo:     "shinhan-merchant-key",
	},
}

// Config returns the provider config for a type key and whether the
// type is known.
func Config(providerType string) (ProviderConfig, bool) {
	cfg, ok := providerConfigs[providerType]
	return cfg, ok
}
