package request

import "strings"

type QuotePackageRequest struct {
	ID    string  `json:"id"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

// CreateQuoteRequest is the quote-request form payload from the portal.
type CreateQuoteRequest struct {
	Name          string               `json:"name" binding:"required"`
	Email         string               `json:"email" binding:"required"`
	Description   string               `json:"description"`
	EstimatedCost float64              `json:"estimated_cost"`
	Package       *QuotePackageRequest `json:"package"`
	Rush          bool                 `json:"rush"`
}

// TransitionRequest carries the target status for a lifecycle change.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r TransitionRequest) ResolveStatus() string {
	return strings.TrimSpace(strings.ToLower(r.Status))
}
