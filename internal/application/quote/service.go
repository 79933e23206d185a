package quote

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boxerp/backend/internal/domain/billing"
	"github.com/boxerp/backend/internal/domain/costing"
	"github.com/boxerp/backend/internal/domain/shared"
	"github.com/boxerp/backend/internal/domain/shared/valueobject"
	"github.com/boxerp/backend/internal/domain/tax"
)

// Defaults carries tenant-independent business defaults applied when a
// request leaves a field unset. Loaded from configuration at startup.
type Defaults struct {
	FlutingFactor float64
	GSTRate       decimal.Decimal
	InvoicePrefix string
}

// NewDefaults returns the stock business defaults
func NewDefaults() Defaults {
	return Defaults{
		FlutingFactor: costing.DefaultFlutingFactor,
		GSTRate:       tax.DefaultGSTRate,
		InvoicePrefix: "INV",
	}
}

// Service orchestrates the costing, tax and numbering domains for
// quote and invoice flows. It owns no state beyond its defaults and is
// safe for concurrent use.
type Service struct {
	defaults Defaults
	logger   *zap.Logger
}

// NewService creates a quote service
func NewService(defaults Defaults, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{defaults: defaults, logger: logger}
}

// CalculateLine costs one quote line. Layers with no rate entry are
// priced at zero and reported in MissingRates; a warning is logged per
// missing key so silently underpriced quotes are visible in operations.
func (s *Service) CalculateLine(ctx context.Context, input QuoteLineInput) (QuoteLineOutput, error) {
	spec := costing.BoxSpecification{
		Length:         input.Length,
		Width:          input.Width,
		Height:         input.Height,
		Ply:            input.Ply,
		Quantity:       input.Quantity,
		FlutingFactor:  input.FlutingFactor,
		ConversionRate: input.ConversionRate,
		PrintingCost:   input.PrintingCost,
		DieCost:        input.DieCost,
	}
	if spec.FlutingFactor == 0 {
		spec.FlutingFactor = s.defaults.FlutingFactor
	}
	spec.Layers = make([]costing.PaperLayer, len(input.Layers))
	for i, l := range input.Layers {
		spec.Layers[i] = costing.PaperLayer{BF: l.BF, GSM: l.GSM, Shade: l.Shade, IsFlute: l.IsFlute}
	}

	rates := make(costing.RateTable, len(input.Rates))
	for _, r := range input.Rates {
		rates[costing.RateKey{BF: r.BF, GSM: r.GSM, Shade: r.Shade}] = r.Rate
	}

	var missing []string
	for _, key := range rates.MissingKeys(spec.Layers) {
		missing = append(missing, key.String())
		s.logger.Warn("paper rate missing, layer priced at zero",
			zap.String("tenant_id", input.TenantID.String()),
			zap.String("rate_key", key.String()),
		)
	}

	result, err := costing.Calculate(spec, rates)
	if err != nil {
		return QuoteLineOutput{}, err
	}

	return QuoteLineOutput{Result: result, MissingRates: missing}, nil
}

// ResolvePaperRate applies the tenant's pricing rule to one paper
// grade. The result is what callers persist into their rate tables.
func (s *Service) ResolvePaperRate(ctx context.Context, query PaperRateQuery) (decimal.Decimal, error) {
	if query.BF <= 0 || query.GSM <= 0 {
		return decimal.Zero, shared.NewDomainError(shared.ErrInvalidInput.Code,
			"bf and gsm must be positive")
	}
	if query.BFBasePrice.IsNegative() {
		return decimal.Zero, shared.NewDomainError(shared.ErrInvalidInput.Code,
			"bf base price cannot be negative")
	}
	return costing.CalculatePaperRate(
		query.GSM, query.BFBasePrice, query.Rule,
		query.ShadePremium, query.MarketAdjustment,
	), nil
}

// InvoiceTotals sums the quote-line totals and produces the GST
// breakdown for the invoice.
func (s *Service) InvoiceTotals(ctx context.Context, input InvoiceTotalsInput) (InvoiceTotalsOutput, error) {
	if len(input.LineTotals) == 0 {
		return InvoiceTotalsOutput{}, shared.NewDomainError(shared.ErrInvalidInput.Code,
			"at least one line total is required")
	}
	if input.DiscountAmount.IsNegative() {
		return InvoiceTotalsOutput{}, shared.NewDomainError(shared.ErrInvalidInput.Code,
			"discount amount cannot be negative")
	}

	subtotal := decimal.Zero
	for _, line := range input.LineTotals {
		subtotal = subtotal.Add(line)
	}

	gstRate := s.defaults.GSTRate
	if input.GSTRate != nil {
		if input.GSTRate.IsNegative() {
			return InvoiceTotalsOutput{}, shared.NewDomainError(shared.ErrInvalidInput.Code,
				"gst rate cannot be negative")
		}
		gstRate = *input.GSTRate
	}

	interState := s.determineInterState(input)
	breakdown := tax.CalculateGST(subtotal, gstRate, interState, input.DiscountAmount)

	return InvoiceTotalsOutput{
		Subtotal:   subtotal,
		InterState: interState,
		Breakdown:  breakdown,
		GrandTotal: valueobject.NewMoneyINR(breakdown.TotalAmount),
	}, nil
}

// determineInterState prefers the explicit flag; otherwise it compares
// GSTIN state codes, warning on malformed GSTINs before falling back
// to the intra-state default.
func (s *Service) determineInterState(input InvoiceTotalsInput) bool {
	if input.InterState != nil {
		return *input.InterState
	}
	for _, gstin := range []string{input.SellerGSTIN, input.BuyerGSTIN} {
		if gstin != "" && !tax.ValidateGSTIN(gstin) {
			s.logger.Warn("malformed GSTIN supplied for inter-state determination",
				zap.String("tenant_id", input.TenantID.String()),
				zap.String("gstin", gstin),
			)
		}
	}
	return tax.DetermineInterState(input.SellerGSTIN, input.BuyerGSTIN)
}

// NextInvoiceNumber formats the invoice number for a sequence already
// allocated by the persistence layer. This service does not reserve
// sequences; serialising allocation per (tenant, financial year) is
// the caller's responsibility.
func (s *Service) NextInvoiceNumber(ctx context.Context, input InvoiceNumberInput) (string, error) {
	if input.Sequence <= 0 {
		return "", shared.NewDomainError(shared.ErrInvalidInput.Code,
			"sequence must be positive")
	}
	prefix := input.Prefix
	if prefix == "" {
		prefix = s.defaults.InvoicePrefix
	}
	fy := input.FinancialYear
	if fy == "" {
		date := input.Date
		if date.IsZero() {
			date = time.Now()
		}
		fy = billing.FinancialYear(date)
	}
	return billing.GenerateInvoiceNumber(prefix, input.Sequence, fy), nil
}
