package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/domain/money"
	"freelance_billing/internal/usecase/interfaces"
)

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrInvalidInvoiceID       = errors.New("invalid invoice id")
	ErrInvalidPaymentKind     = errors.New("invalid payment kind")
	ErrPaymentGatewayDeclined = errors.New("payment declined by provider")
)

// IInvoiceUseCase covers payment recording plus the privileged
// operator actions (reset, delete). Reset and delete take the acting
// admin's identity so the privileged mutation can be audit-logged.

type IInvoiceUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context) ([]entities.Invoice, error)
	RecordPayment(ctx context.Context, id string, kind entities.PaymentKind, payload json.RawMessage) (entities.Invoice, error)
	ResetToPending(ctx context.Context, id, actor string) (entities.Invoice, error)
	Delete(ctx context.Context, id, actor string) error
}

type InvoiceUseCase struct {
	repo    interfaces.IInvoiceRepository
	gateway interfaces.IPaymentGateway
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

// NewInvoiceUseCase builds the invoice service. gateway may be nil, in
// which case payments are recorded without a provider charge (offline
// payments: bank transfer, cash).
func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, gateway interfaces.IPaymentGateway) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, gateway: gateway}
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context) ([]entities.Invoice, error) {
	return u.repo.List(ctx)
}

// RecordPayment applies a payment event to the invoice.
//
//   - deposit: marks the upfront portion collected; status stays
//     pending unless the invoice is already paid.
//   - full: marks the invoice paid and stamps the paid date; the
//     deposit flag is left as-is since full payment supersedes it.
//
// Re-recording an already-applied event is an idempotent success. When
// a provider gateway is configured the corresponding amount is charged
// before the row is touched, so a declined charge never flips state.
func (u *InvoiceUseCase) RecordPayment(ctx context.Context, id string, kind entities.PaymentKind, payload json.RawMessage) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	if kind != entities.PaymentKindDeposit && kind != entities.PaymentKindFull {
		return entities.Invoice{}, ErrInvalidPaymentKind
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}

	if kind == entities.PaymentKindDeposit && inv.DepositPaid {
		return inv, nil
	}
	if kind == entities.PaymentKindFull && inv.Status == entities.InvoiceStatusPaid {
		return inv, nil
	}

	if err := u.chargeProvider(ctx, inv, kind, payload); err != nil {
		return entities.Invoice{}, err
	}

	var updated entities.Invoice
	switch kind {
	case entities.PaymentKindDeposit:
		updated, err = u.repo.RecordDeposit(ctx, id)
	case entities.PaymentKindFull:
		updated, err = u.repo.MarkPaid(ctx, id, time.Now().UTC())
	}
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	log.Printf("[invoice][usecase] payment recorded invoice_id=%s kind=%s status=%s deposit_paid=%t", updated.ID, kind, updated.Status, updated.DepositPaid)
	return updated, nil
}

func (u *InvoiceUseCase) chargeProvider(ctx context.Context, inv entities.Invoice, kind entities.PaymentKind, payload json.RawMessage) error {
	if u.gateway == nil {
		return nil
	}

	amount := chargeAmount(inv, kind)
	if amount <= 0 {
		return nil
	}

	providerID, providerStatus, _, err := u.gateway.Charge(ctx, interfaces.ChargeRequest{
		InvoiceID:   inv.ID,
		Amount:      amount,
		Description: fmt.Sprintf("Invoice %s (%s)", inv.ID, kind),
		Payload:     payload,
	})
	if err != nil {
		log.Printf("[invoice][usecase] provider charge failed invoice_id=%s kind=%s err=%v", inv.ID, kind, err)
		return err
	}
	if providerStatus != "approved" {
		log.Printf("[invoice][usecase] provider charge declined invoice_id=%s kind=%s provider_status=%s", inv.ID, kind, providerStatus)
		return ErrPaymentGatewayDeclined
	}
	log.Printf("[invoice][usecase] provider charge approved invoice_id=%s kind=%s provider_payment_id=%s amount=%.2f", inv.ID, kind, providerID, amount)
	return nil
}

// chargeAmount picks the portion still owed for the given payment kind.
func chargeAmount(inv entities.Invoice, kind entities.PaymentKind) float64 {
	deposit := money.Round2(inv.Amount * money.DepositRate)
	if inv.DepositAmount != nil {
		deposit = *inv.DepositAmount
	}
	remaining := inv.Amount - deposit
	if inv.RemainingAmount != nil {
		remaining = *inv.RemainingAmount
	}

	if kind == entities.PaymentKindDeposit {
		return deposit
	}
	if inv.DepositPaid {
		return remaining
	}
	return inv.Amount
}

// ResetToPending is the operator escape hatch: status back to pending,
// deposit flag cleared, paid date removed. Privileged, always audited.
func (u *InvoiceUseCase) ResetToPending(ctx context.Context, id, actor string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	updated, err := u.repo.ResetToPending(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if updated.ID == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	log.Printf("[audit] invoice reset invoice_id=%s actor=%s", id, actor)
	return updated, nil
}

// Delete removes the invoice. The originating quote is kept; only its
// active-invoice pointer is released so a later re-approval can
// materialize a replacement. Privileged, always audited.
func (u *InvoiceUseCase) Delete(ctx context.Context, id, actor string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInvoiceID
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvoiceNotFound
	}
	log.Printf("[audit] invoice deleted invoice_id=%s actor=%s", id, actor)
	return nil
}
