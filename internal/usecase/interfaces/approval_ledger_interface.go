package interfaces

import (
	"context"
	"errors"

	"freelance_billing/internal/domain/entities"
)

// ErrLedgerUnavailable wraps store timeouts and transport failures.
// Part of the repository contract: implementations must use it so the
// service layer can surface a stable "try again" error kind without
// knowing the storage engine.
var ErrLedgerUnavailable = errors.New("ledger unavailable")

// IApprovalLedger executes the approve+materialize unit of work.
//
// The quote status write and the invoice creation must commit together
// or not at all. The implementation conditions the quote write on the
// approval still being allowed and on no active invoice existing, so of
// two concurrent approvals at most one materializes.
//
// staleInvoiceID is non-empty when the caller observed the quote still
// pointing at an invoice whose row is gone (an operator delete whose
// pointer release did not land). The transaction then also accepts a
// pointer equal to that exact id, so re-approval can replace it; any
// other pointer value still cancels the transaction.
//
// Returns the zero-value Quote when the transaction was cancelled by a
// condition failure (a concurrent writer won the race); callers map
// that to a conflict.

type IApprovalLedger interface {
	ApproveQuoteWithInvoice(ctx context.Context, quoteID string, inv entities.Invoice, staleInvoiceID string) (entities.Quote, entities.Invoice, error)
}
