package response

import (
	"time"

	"freelance_billing/internal/domain/entities"
)

type QuotePackageResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type QuoteResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Description   string                `json:"description,omitempty"`
	EstimatedCost float64               `json:"estimated_cost"`
	Package       *QuotePackageResponse `json:"package,omitempty"`
	Rush          bool                  `json:"rush"`
	Status        string                `json:"status"`
	InvoiceID     string                `json:"invoice_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	res := QuoteResponse{
		ID:            q.ID,
		Name:          q.Name,
		Email:         q.Email,
		Description:   q.Description,
		EstimatedCost: q.EstimatedCost,
		Rush:          q.Rush,
		Status:        string(q.Status),
		InvoiceID:     q.InvoiceID,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.Package != nil {
		res.Package = &QuotePackageResponse{
			ID:    q.Package.ID,
			Name:  q.Package.Name,
			Price: q.Package.Price,
		}
	}
	return res
}

// ApprovalResponse is returned by the approve endpoint: the quote in
// its post-approval state together with its materialized invoice.
type ApprovalResponse struct {
	Quote   QuoteResponse   `json:"quote"`
	Invoice InvoiceResponse `json:"invoice"`
}

func FromApproval(q entities.Quote, inv entities.Invoice) ApprovalResponse {
	return ApprovalResponse{Quote: FromQuote(q), Invoice: FromInvoice(inv)}
}
