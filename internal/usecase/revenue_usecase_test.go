package usecase

import (
	"context"
	"errors"
	"testing"

	"freelance_billing/internal/domain/entities"
	mock_interfaces "freelance_billing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestRevenueUseCase_ComputeRevenue(t *testing.T) {
	t.Run("empty ledger yields the baseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewRevenueUseCase(47530, repo)
		repo.EXPECT().List(gomock.Any()).Return(nil, nil)

		report, err := uc.ComputeRevenue(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Revenue != 47530 || report.Baseline != 47530 || report.Collected != 0 {
			t.Fatalf("unexpected report: %+v", report)
		}
	})

	t.Run("deposit counts its portion only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewRevenueUseCase(47530, repo)

		deposit := 200.0
		repo.EXPECT().List(gomock.Any()).Return([]entities.Invoice{
			{ID: "inv-1", Amount: 1000, Status: entities.InvoiceStatusPending, DepositPaid: true, DepositAmount: &deposit},
		}, nil)

		report, err := uc.ComputeRevenue(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Collected != 200 {
			t.Fatalf("expected collected 200, got %v", report.Collected)
		}
		if report.Revenue != 47730 {
			t.Fatalf("expected revenue 47730, got %v", report.Revenue)
		}
	})

	t.Run("paid invoice counts in full", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewRevenueUseCase(0, repo)

		deposit := 200.0
		repo.EXPECT().List(gomock.Any()).Return([]entities.Invoice{
			{ID: "inv-1", Amount: 1000, Status: entities.InvoiceStatusPaid, DepositPaid: true, DepositAmount: &deposit},
			{ID: "inv-2", Amount: 500, Status: entities.InvoiceStatusPending},
		}, nil)

		report, err := uc.ComputeRevenue(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Collected != 1000 {
			t.Fatalf("expected collected 1000, got %v", report.Collected)
		}
		if report.Revenue != 1000 {
			t.Fatalf("expected revenue 1000, got %v", report.Revenue)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		uc := NewRevenueUseCase(0, repo)
		repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db"))

		_, err := uc.ComputeRevenue(context.Background())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}
