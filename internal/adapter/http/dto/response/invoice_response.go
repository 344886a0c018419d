package response

import (
	"time"

	"freelance_billing/internal/domain/entities"
)

type InvoiceResponse struct {
	ID              string     `json:"id"`
	QuoteID         string     `json:"quote_id"`
	Customer        string     `json:"customer,omitempty"`
	Amount          float64    `json:"amount"`
	DepositAmount   *float64   `json:"deposit_amount,omitempty"`
	RemainingAmount *float64   `json:"remaining_amount,omitempty"`
	Status          string     `json:"status"`
	DepositPaid     bool       `json:"deposit_paid"`
	PaidDate        *time.Time `json:"paid_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		QuoteID:         inv.QuoteID,
		Customer:        inv.Customer,
		Amount:          inv.Amount,
		DepositAmount:   inv.DepositAmount,
		RemainingAmount: inv.RemainingAmount,
		Status:          string(inv.Status),
		DepositPaid:     inv.DepositPaid,
		PaidDate:        inv.PaidDate,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

func FromInvoices(invoices []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv))
	}
	return out
}
