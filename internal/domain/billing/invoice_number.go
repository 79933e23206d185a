// Package billing holds invoice numbering for the Indian fiscal year.
//
// The generator only formats and parses numbers. It does not allocate
// or reserve sequences and is not a concurrency boundary: callers must
// serialise sequence allocation per (tenant, financial year), e.g. via
// a unique constraint plus retry in the persistence layer.
package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InvoiceNumber is a parsed invoice identifier. It is computed on
// invoice finalisation and immutable afterwards; uniqueness per
// (tenant, financial year) is enforced by the persistence layer.
type InvoiceNumber struct {
	Prefix        string `json:"prefix"`
	FinancialYear string `json:"financial_year"` // "YYYY-YY"
	Sequence      int    `json:"sequence"`
}

// String renders the canonical form, e.g. "INV/FY2024-25/0042"
func (n InvoiceNumber) String() string {
	return fmt.Sprintf("%s/FY%s/%04d", n.Prefix, n.FinancialYear, n.Sequence)
}

// FinancialYear returns the Indian fiscal year (April-March) containing
// the date, formatted "YYYY-YY". March 31st 2025 falls in "2024-25",
// April 1st 2025 in "2025-26".
func FinancialYear(date time.Time) string {
	year := date.Year()
	if date.Month() >= time.April {
		return fmt.Sprintf("%d-%02d", year, (year+1)%100)
	}
	return fmt.Sprintf("%d-%02d", year-1, year%100)
}

// GenerateInvoiceNumber formats an invoice number from a prefix, a
// caller-supplied sequence, and a financial year. An empty financial
// year derives the current one from the wall clock.
func GenerateInvoiceNumber(prefix string, sequence int, financialYear string) string {
	if financialYear == "" {
		financialYear = FinancialYear(time.Now())
	}
	return InvoiceNumber{Prefix: prefix, FinancialYear: financialYear, Sequence: sequence}.String()
}

// ParseSequence extracts the trailing sequence from an invoice number.
// It returns 0 for anything unparseable and never returns an error;
// callers must treat 0 as "no prior sequence", not as a valid value.
func ParseSequence(invoiceNumber string) int {
	if invoiceNumber == "" {
		return 0
	}
	parts := strings.Split(invoiceNumber, "/")
	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return seq
}
