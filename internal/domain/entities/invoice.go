package entities

import (
	"fmt"
	"time"
)

// InvoiceStatus represents the payment state of an invoice.
//
// The deposit-paid flag is orthogonal: an invoice can be pending with
// DepositPaid true, meaning the upfront portion has been collected.

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case InvoiceStatusPending, InvoiceStatusPaid:
		return InvoiceStatus(s), nil
	}
	return "", fmt.Errorf("unknown invoice status %q", s)
}

// PaymentKind selects which portion of an invoice a payment event covers.

type PaymentKind string

const (
	PaymentKindDeposit PaymentKind = "deposit"
	PaymentKindFull    PaymentKind = "full"
)

func ParsePaymentKind(s string) (PaymentKind, error) {
	switch PaymentKind(s) {
	case PaymentKindDeposit, PaymentKindFull:
		return PaymentKind(s), nil
	}
	return "", fmt.Errorf("unknown payment kind %q", s)
}

// Invoice is the billing record materialized from an approved quote.
//
// Storage model (DynamoDB):
//   - PK: id; the owning quote keeps the reverse pointer in invoice_id.
//
// Monetary representation:
//   - Amounts are cent-rounded float64. DepositAmount + RemainingAmount
//     equals Amount exactly whenever the pair is set, because remaining
//     is always computed by subtraction.
//   - Legacy rows may store amounts as either string or number
//     attributes; the repository reads both and treats unparsable
//     values as zero.
type Invoice struct {
	ID              string        `json:"id"`
	QuoteID         string        `json:"quote_id"`
	Customer        string        `json:"customer"`
	Amount          float64       `json:"amount"`
	DepositAmount   *float64      `json:"deposit_amount,omitempty"`
	RemainingAmount *float64      `json:"remaining_amount,omitempty"`
	Status          InvoiceStatus `json:"status"`
	DepositPaid     bool          `json:"deposit_paid"`
	PaidDate        *time.Time    `json:"paid_date,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
