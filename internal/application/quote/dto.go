package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boxerp/backend/internal/domain/costing"
	"github.com/boxerp/backend/internal/domain/shared/valueobject"
	"github.com/boxerp/backend/internal/domain/tax"
)

// PaperLayerInput is one board ply as submitted on a quote item
type PaperLayerInput struct {
	BF      int    `json:"bf"`
	GSM     int    `json:"gsm"`
	Shade   string `json:"shade"`
	IsFlute bool   `json:"is_flute"`
}

// PaperRateInput is one tenant rate-table entry supplied with the request
type PaperRateInput struct {
	BF    int             `json:"bf"`
	GSM   int             `json:"gsm"`
	Shade string          `json:"shade"`
	Rate  decimal.Decimal `json:"rate"`
}

// QuoteLineInput carries everything needed to cost one quote line.
// The rate entries come from the tenant's pricing tables; this service
// does not fetch them.
type QuoteLineInput struct {
	TenantID uuid.UUID

	Length float64
	Width  float64
	Height float64

	Ply      int
	Quantity int
	Layers   []PaperLayerInput

	// FlutingFactor of 0 selects the configured default
	FlutingFactor  float64
	ConversionRate decimal.Decimal
	PrintingCost   decimal.Decimal
	DieCost        decimal.Decimal

	Rates []PaperRateInput
}

// QuoteLineOutput is the costing result plus the rate keys that had no
// table entry and were therefore priced at zero.
type QuoteLineOutput struct {
	Result       costing.CalculationResult `json:"result"`
	MissingRates []string                  `json:"missing_rates,omitempty"`
}

// PaperRateQuery asks for a final per-kg rate for one paper grade
type PaperRateQuery struct {
	TenantID uuid.UUID

	BF    int
	GSM   int
	Shade string

	BFBasePrice      decimal.Decimal
	Rule             costing.PricingAdjustmentRule
	ShadePremium     decimal.Decimal
	MarketAdjustment decimal.Decimal
}

// InvoiceTotalsInput aggregates quote-line totals into a taxable amount
// and asks for its GST breakdown. InterState, when nil, is determined
// by comparing the seller and buyer GSTIN state codes.
type InvoiceTotalsInput struct {
	TenantID uuid.UUID

	LineTotals     []decimal.Decimal
	DiscountAmount decimal.Decimal

	// GSTRate of nil selects the configured default rate
	GSTRate *decimal.Decimal

	SellerGSTIN string
	BuyerGSTIN  string
	InterState  *bool
}

// InvoiceTotalsOutput is the invoice-level tax summary. GrandTotal is
// the tax-inclusive amount payable, denominated in INR.
type InvoiceTotalsOutput struct {
	Subtotal   decimal.Decimal   `json:"subtotal"`
	InterState bool              `json:"inter_state"`
	Breakdown  tax.GSTBreakdown  `json:"breakdown"`
	GrandTotal valueobject.Money `json:"grand_total"`
}

// InvoiceNumberInput formats an invoice number for a sequence the
// persistence layer has already allocated
type InvoiceNumberInput struct {
	TenantID uuid.UUID

	Prefix   string
	Sequence int

	// FinancialYear, when set ("YYYY-YY"), is used as-is. Otherwise
	// the year is derived from Date, or from the current clock when
	// Date is zero.
	FinancialYear string
	Date          time.Time
}
