package entities

import (
	"fmt"
	"time"
)

// QuoteStatus represents the lifecycle of a quote request.
//
// Domain notes:
//   - The billing core is the source of truth for quote/invoice state.
//   - Storage keeps the status as plain text; every value read back is
//     mapped through ParseQuoteStatus so unknown strings are rejected
//     instead of leaking into the state machine.

type QuoteStatus string

const (
	QuoteStatusPending     QuoteStatus = "pending"
	QuoteStatusUnderReview QuoteStatus = "under_review"
	QuoteStatusQuoted      QuoteStatus = "quoted"
	QuoteStatusApproved    QuoteStatus = "approved"
	QuoteStatusRejected    QuoteStatus = "rejected"
	QuoteStatusCancelled   QuoteStatus = "cancelled"
)

// ParseQuoteStatus maps the stored/user-supplied text onto the closed
// status set. Unrecognized values are an error, never passed through.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	switch QuoteStatus(s) {
	case QuoteStatusPending, QuoteStatusUnderReview, QuoteStatusQuoted,
		QuoteStatusApproved, QuoteStatusRejected, QuoteStatusCancelled:
		return QuoteStatus(s), nil
	}
	return "", fmt.Errorf("unknown quote status %q", s)
}

// IsTerminal reports whether no further transition may leave the status.
// Approved is terminal for the state machine itself; it is the trigger
// state for invoice materialization.
func (s QuoteStatus) IsTerminal() bool {
	switch s {
	case QuoteStatusApproved, QuoteStatusRejected, QuoteStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition from s to target is
// allowed. Same-state transitions are idempotent successes and are not
// decided here; callers short-circuit them before consulting the table.
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	switch target {
	case QuoteStatusApproved:
		return s == QuoteStatusQuoted || s == QuoteStatusUnderReview
	case QuoteStatusRejected, QuoteStatusCancelled:
		return !s.IsTerminal()
	case QuoteStatusUnderReview:
		return s == QuoteStatusPending || s == QuoteStatusQuoted
	case QuoteStatusQuoted:
		return s == QuoteStatusPending || s == QuoteStatusUnderReview
	case QuoteStatusPending:
		return false
	}
	return false
}

// QuotePackage is the optional service package selected on submission.
type QuotePackage struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Quote is a customer quote request.
//
// Storage model (DynamoDB):
//   - PK: id (the shareable external identifier, time-and-random based)
//   - invoice_id holds the active-invoice pointer once approved; its
//     absence is what the approval transaction conditions on, so at most
//     one invoice is ever active for a quote.
type Quote struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Description   string        `json:"description"`
	EstimatedCost float64       `json:"estimated_cost"`
	Package       *QuotePackage `json:"package,omitempty"`
	Rush          bool          `json:"rush"`
	Status        QuoteStatus   `json:"status"`
	InvoiceID     string        `json:"invoice_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
