package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"freelance_billing/internal/domain/entities"
	"freelance_billing/internal/domain/money"
	"freelance_billing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrInvalidQuoteID       = errors.New("invalid quote id")
	ErrInvalidQuoteInput    = errors.New("invalid quote input")
	ErrInvalidEstimatedCost = errors.New("invalid estimated cost")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrApprovalConflict     = errors.New("concurrent approval conflict")
)

// SubmitQuoteInput is the domain command for a new quote request.
type SubmitQuoteInput struct {
	Name          string
	Email         string
	Description   string
	EstimatedCost float64
	Package       *entities.QuotePackage
	Rush          bool
}

// IQuoteUseCase exposes the quote lifecycle operations.
//
//   - Submit creates a quote in the pending state.
//   - Transition applies a guarded status change; a same-state
//     transition is an idempotent success.
//   - Approve is the transition into approved: it materializes the
//     invoice in the same unit of work, so the status and the invoice
//     commit together or not at all.

type IQuoteUseCase interface {
	Submit(ctx context.Context, in SubmitQuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Transition(ctx context.Context, id string, target entities.QuoteStatus) (entities.Quote, error)
	Approve(ctx context.Context, id string) (entities.Quote, entities.Invoice, error)
}

type QuoteUseCase struct {
	repo        interfaces.IQuoteRepository
	invoiceRepo interfaces.IInvoiceRepository
	ledger      interfaces.IApprovalLedger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, invoiceRepo interfaces.IInvoiceRepository, ledger interfaces.IApprovalLedger) *QuoteUseCase {
	return &QuoteUseCase{repo: repo, invoiceRepo: invoiceRepo, ledger: ledger}
}

func (u *QuoteUseCase) Submit(ctx context.Context, in SubmitQuoteInput) (entities.Quote, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Email == "" || !strings.Contains(in.Email, "@") {
		return entities.Quote{}, ErrInvalidQuoteInput
	}
	if in.EstimatedCost < 0 {
		return entities.Quote{}, ErrInvalidEstimatedCost
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:            newQuoteID(now),
		Name:          in.Name,
		Email:         in.Email,
		Description:   in.Description,
		EstimatedCost: money.Round2(in.EstimatedCost),
		Package:       in.Package,
		Rush:          in.Rush,
		Status:        entities.QuoteStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.repo.Create(ctx, q)
	if errors.Is(err, interfaces.ErrDuplicateQuoteID) {
		// The id carries a random suffix, so a collision is a fluke;
		// one fresh id is enough.
		q.ID = newQuoteID(now)
		created, err = u.repo.Create(ctx, q)
	}
	return created, err
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// Transition applies a guarded status change. Transitioning into
// approved is delegated to Approve so the invoice side effect is never
// skipped, whichever endpoint the caller used.
func (u *QuoteUseCase) Transition(ctx context.Context, id string, target entities.QuoteStatus) (entities.Quote, error) {
	if target == entities.QuoteStatusApproved {
		q, _, err := u.Approve(ctx, id)
		return q, err
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if q.Status == target {
		// Idempotent re-entry: succeed without touching the row.
		return q, nil
	}
	if !q.Status.CanTransitionTo(target) {
		return entities.Quote{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, target)
	}

	updated, err := u.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	log.Printf("[quote][usecase] transition quote_id=%s %s -> %s", id, q.Status, target)
	return updated, nil
}

// Approve moves the quote into approved and materializes its invoice
// atomically. Re-approving an already approved quote with a live
// invoice is an idempotent success; if the active invoice was deleted
// by an operator, re-approval materializes a fresh one.
func (u *QuoteUseCase) Approve(ctx context.Context, id string) (entities.Quote, entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, entities.Invoice{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, entities.Invoice{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, entities.Invoice{}, ErrQuoteNotFound
	}

	staleInvoiceID := ""
	switch q.Status {
	case entities.QuoteStatusApproved:
		if q.InvoiceID != "" {
			inv, err := u.invoiceRepo.GetByID(ctx, q.InvoiceID)
			if err != nil {
				return entities.Quote{}, entities.Invoice{}, err
			}
			if inv.ID != "" {
				return q, inv, nil
			}
			// The row behind the pointer is gone (operator delete whose
			// pointer release did not land); let the transaction replace
			// that exact stale pointer.
			staleInvoiceID = q.InvoiceID
		}
		// Active invoice gone: fall through and re-materialize.
	case entities.QuoteStatusQuoted, entities.QuoteStatusUnderReview:
	default:
		return entities.Quote{}, entities.Invoice{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, entities.QuoteStatusApproved)
	}

	inv := materializeInvoice(q)
	approved, created, err := u.ledger.ApproveQuoteWithInvoice(ctx, q.ID, inv, staleInvoiceID)
	if err != nil {
		return entities.Quote{}, entities.Invoice{}, err
	}
	if approved.ID == "" {
		// A concurrent writer changed the quote between our read and
		// the transaction; the caller may resubmit safely.
		return entities.Quote{}, entities.Invoice{}, ErrApprovalConflict
	}
	log.Printf("[quote][usecase] approved quote_id=%s invoice_id=%s amount=%.2f", approved.ID, created.ID, created.Amount)
	return approved, created, nil
}

// materializeInvoice derives the pending invoice for an approved quote,
// applying the deposit split policy.
func materializeInvoice(q entities.Quote) entities.Invoice {
	amount := money.Round2(q.EstimatedCost)
	deposit, remaining := money.ComputeSplit(amount)
	now := time.Now().UTC()
	return entities.Invoice{
		ID:              uuid.NewString(),
		QuoteID:         q.ID,
		Customer:        q.Email,
		Amount:          amount,
		DepositAmount:   &deposit,
		RemainingAmount: &remaining,
		Status:          entities.InvoiceStatusPending,
		DepositPaid:     false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// newQuoteID builds the shareable external identifier: a timestamp for
// human ordering plus a random suffix for uniqueness.
func newQuoteID(now time.Time) string {
	return fmt.Sprintf("q-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8])
}
