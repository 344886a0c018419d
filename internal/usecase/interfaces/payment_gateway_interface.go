package interfaces

import (
	"context"
	"encoding/json"
)

// ChargeRequest describes a provider charge derived from an invoice.
// Amount is authoritative (taken from the stored invoice, never from
// the caller); Payload carries optional provider-specific fields such
// as the payment method token.
type ChargeRequest struct {
	InvoiceID   string
	Amount      float64
	Description string
	Payload     json.RawMessage
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado
// Pago). The billing core uses it to collect a deposit or remaining
// balance before marking the invoice; the provider response is kept for
// traceability.
type IPaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
