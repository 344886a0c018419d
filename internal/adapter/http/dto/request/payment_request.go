package request

import (
	"encoding/json"
	"strings"
)

// PaymentRequest is the payload for recording a payment event.
//
// `payment` is optional provider-specific JSON (e.g. a Mercado Pago
// payment method token) passed through to the gateway as-is.

type PaymentRequest struct {
	Kind    string          `json:"kind" binding:"required"`
	Payment json.RawMessage `json:"payment,omitempty"`
}

func (r PaymentRequest) ResolveKind() string {
	return strings.TrimSpace(strings.ToLower(r.Kind))
}
