package usecase

import (
	"context"

	"freelance_billing/internal/domain/money"
	"freelance_billing/internal/usecase/interfaces"
)

// RevenueReport is the derived revenue figure: a fixed historical
// baseline plus everything collected across current invoices.
type RevenueReport struct {
	Revenue   float64 `json:"revenue"`
	Baseline  float64 `json:"baseline"`
	Collected float64 `json:"collected"`
}

type IRevenueUseCase interface {
	ComputeRevenue(ctx context.Context) (RevenueReport, error)
}

// RevenueUseCase recomputes revenue from scratch on every query.
// Invoice volume is small; a full scan avoids the drift a cached
// running total would accumulate under concurrent payment writes.
type RevenueUseCase struct {
	baseline float64
	repo     interfaces.IInvoiceRepository
}

var _ IRevenueUseCase = (*RevenueUseCase)(nil)

// NewRevenueUseCase takes the baseline as configuration injected at
// startup, never a literal in code.
func NewRevenueUseCase(baseline float64, repo interfaces.IInvoiceRepository) *RevenueUseCase {
	return &RevenueUseCase{baseline: baseline, repo: repo}
}

func (u *RevenueUseCase) ComputeRevenue(ctx context.Context) (RevenueReport, error) {
	invoices, err := u.repo.List(ctx)
	if err != nil {
		return RevenueReport{}, err
	}

	collected := 0.0
	for _, inv := range invoices {
		collected += money.CollectedAmount(inv)
	}
	collected = money.Round2(collected)

	return RevenueReport{
		Revenue:   money.Round2(u.baseline + collected),
		Baseline:  u.baseline,
		Collected: collected,
	}, nil
}
