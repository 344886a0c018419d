package entities

import "testing"

func TestParseQuoteStatus(t *testing.T) {
	valid := []string{"pending", "under_review", "quoted", "approved", "rejected", "cancelled"}
	for _, s := range valid {
		got, err := ParseQuoteStatus(s)
		if err != nil {
			t.Fatalf("ParseQuoteStatus(%q): unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Fatalf("ParseQuoteStatus(%q): got %q", s, got)
		}
	}

	for _, s := range []string{"", "Pending", "done", "under review"} {
		if _, err := ParseQuoteStatus(s); err == nil {
			t.Fatalf("ParseQuoteStatus(%q): expected error", s)
		}
	}
}

func TestQuoteStatusIsTerminal(t *testing.T) {
	terminal := map[QuoteStatus]bool{
		QuoteStatusPending:     false,
		QuoteStatusUnderReview: false,
		QuoteStatusQuoted:      false,
		QuoteStatusApproved:    true,
		QuoteStatusRejected:    true,
		QuoteStatusCancelled:   true,
	}
	for s, want := range terminal {
		if got := s.IsTerminal(); got != want {
			t.Fatalf("%s.IsTerminal(): expected %t got %t", s, want, got)
		}
	}
}

func TestQuoteStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    QuoteStatus
		to      QuoteStatus
		allowed bool
	}{
		{QuoteStatusPending, QuoteStatusUnderReview, true},
		{QuoteStatusPending, QuoteStatusQuoted, true},
		{QuoteStatusPending, QuoteStatusApproved, false},
		{QuoteStatusPending, QuoteStatusRejected, true},
		{QuoteStatusPending, QuoteStatusCancelled, true},
		{QuoteStatusUnderReview, QuoteStatusQuoted, true},
		{QuoteStatusUnderReview, QuoteStatusApproved, true},
		{QuoteStatusQuoted, QuoteStatusUnderReview, true},
		{QuoteStatusQuoted, QuoteStatusApproved, true},
		{QuoteStatusQuoted, QuoteStatusCancelled, true},
		{QuoteStatusApproved, QuoteStatusRejected, false},
		{QuoteStatusApproved, QuoteStatusCancelled, false},
		{QuoteStatusRejected, QuoteStatusApproved, false},
		{QuoteStatusRejected, QuoteStatusCancelled, false},
		{QuoteStatusCancelled, QuoteStatusQuoted, false},
		{QuoteStatusQuoted, QuoteStatusPending, false},
		{QuoteStatusUnderReview, QuoteStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %t got %t", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestParseInvoiceStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid"} {
		if _, err := ParseInvoiceStatus(s); err != nil {
			t.Fatalf("ParseInvoiceStatus(%q): unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "open", "PAID"} {
		if _, err := ParseInvoiceStatus(s); err == nil {
			t.Fatalf("ParseInvoiceStatus(%q): expected error", s)
		}
	}
}

func TestParsePaymentKind(t *testing.T) {
	for _, s := range []string{"deposit", "full"} {
		if _, err := ParsePaymentKind(s); err != nil {
			t.Fatalf("ParsePaymentKind(%q): unexpected error: %v", s, err)
		}
	}
	for _, s := range []string{"", "partial", "Full"} {
		if _, err := ParsePaymentKind(s); err == nil {
			t.Fatalf("ParsePaymentKind(%q): expected error", s)
		}
	}
}
