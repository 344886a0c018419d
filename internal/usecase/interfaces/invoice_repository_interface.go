package interfaces

import (
	"context"
	"time"

	"freelance_billing/internal/domain/entities"
)

// IInvoiceRepository abstracts persistence for Invoice.
//
// The billing core must be able to:
//   - look up a single invoice and list all of them (revenue scan)
//   - record a deposit or full payment as a single-row atomic update
//   - reset an invoice to pending (operator escape hatch)
//   - delete an invoice outright
//
// Invoice creation happens only inside the approval transaction, which
// lives on IApprovalLedger.

type IInvoiceRepository interface {
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	List(ctx context.Context) ([]entities.Invoice, error)
	RecordDeposit(ctx context.Context, id string) (entities.Invoice, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (entities.Invoice, error)
	ResetToPending(ctx context.Context, id string) (entities.Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)
}
