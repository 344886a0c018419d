// Package money holds the pure pricing policy shared by invoice
// materialization and revenue aggregation. No state, no I/O.
package money

import (
	"math"
	"strconv"
	"strings"

	"freelance_billing/internal/domain/entities"
)

// DepositRate is the upfront share of an invoice total.
const DepositRate = 0.2

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeSplit divides an invoice total into its deposit and remaining
// portions. Remaining is computed by subtraction, not by amount*0.8:
// the two formulas can diverge under rounding, and subtraction makes
// deposit+remaining == amount hold exactly.
func ComputeSplit(amount float64) (deposit, remaining float64) {
	deposit = Round2(amount * DepositRate)
	remaining = amount - deposit
	return deposit, remaining
}

// CollectedAmount is the portion of an invoice counted toward revenue
// given its current payment state. A paid invoice counts in full
// regardless of the deposit flag; a pending invoice with the deposit
// collected counts its deposit, defaulting to the policy rate when the
// stored deposit amount is absent.
func CollectedAmount(inv entities.Invoice) float64 {
	if inv.Status == entities.InvoiceStatusPaid {
		return inv.Amount
	}
	if inv.DepositPaid {
		if inv.DepositAmount != nil {
			return *inv.DepositAmount
		}
		return Round2(inv.Amount * DepositRate)
	}
	return 0
}

// ParseAmount reads a monetary value that legacy rows may carry as
// free-form text. Unparsable input yields 0 rather than an error so a
// single bad row cannot fail a whole aggregation.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
