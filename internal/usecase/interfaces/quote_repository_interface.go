package interfaces

import (
	"context"
	"errors"

	"freelance_billing/internal/domain/entities"
)

// ErrDuplicateQuoteID reports a Create that lost to an existing row with
// the same external identifier. The id carries a random component, so
// callers treat this as a rare collision and may retry with a fresh id.
var ErrDuplicateQuoteID = errors.New("duplicate quote id")

// IQuoteRepository abstracts persistence for Quote.
//
// Convention: reads return the zero-value Quote (empty ID) when no row
// matches; callers translate that into their own not-found error.
// Conditional updates that find no row follow the same convention.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error)
}
