package response

import "freelance_billing/internal/usecase"

type RevenueResponse struct {
	Revenue   float64 `json:"revenue"`
	Baseline  float64 `json:"baseline"`
	Collected float64 `json:"collected"`
}

func FromRevenueReport(r usecase.RevenueReport) RevenueResponse {
	return RevenueResponse{
		Revenue:   r.Revenue,
		Baseline:  r.Baseline,
		Collected: r.Collected,
	}
}
