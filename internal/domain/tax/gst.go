// Package tax implements India's GST arithmetic: CGST/SGST/IGST
// breakdowns, tax-inclusive reversal, and GSTIN validation.
//
// All monetary math uses decimals with half-up rounding so the
// documented 2-decimal contracts hold exactly. Every function is pure
// and safe for concurrent use.
package tax

import "github.com/shopspring/decimal"

// DefaultGSTRate is the standard rate for corrugated packaging (HSN 4819)
var DefaultGSTRate = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// GSTBreakdown is the tax split for one taxable amount. Exactly one of
// (CGST+SGST) or IGST is non-zero: intra-state supplies split the tax
// between centre and state, inter-state supplies charge IGST alone.
type GSTBreakdown struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalGST     decimal.Decimal `json:"total_gst"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// CalculateGST produces the GST breakdown for an amount at the given
// percentage rate. The discount is applied before tax; a discount
// exceeding the amount clamps the taxable value to zero rather than
// producing negative tax.
//
// For intra-state supplies SGST is computed by subtraction (not by
// rounding again), so CGST+SGST always sums exactly to TotalGST even
// when TotalGST is an odd number of paise.
func CalculateGST(amount, gstRate decimal.Decimal, isInterState bool, discountAmount decimal.Decimal) GSTBreakdown {
	taxableValue := amount.Sub(discountAmount).Round(2)
	if taxableValue.IsNegative() {
		taxableValue = decimal.Zero
	}

	totalGST := taxableValue.Mul(gstRate).Div(hundred).Round(2)

	breakdown := GSTBreakdown{
		TaxableValue: taxableValue,
		TotalGST:     totalGST,
		TotalAmount:  taxableValue.Add(totalGST),
	}

	if isInterState {
		breakdown.IGST = totalGST
		breakdown.CGST = decimal.Zero
		breakdown.SGST = decimal.Zero
		return breakdown
	}

	breakdown.CGST = totalGST.Div(decimal.NewFromInt(2)).Round(2)
	breakdown.SGST = totalGST.Sub(breakdown.CGST)
	breakdown.IGST = decimal.Zero
	return breakdown
}

// CalculateReverseGST backs out the pre-tax base from a tax-inclusive
// total: base = total * 100 / (100 + rate), rounded to 2 decimals.
func CalculateReverseGST(totalAmount, gstRate decimal.Decimal) decimal.Decimal {
	return totalAmount.Mul(hundred).Div(hundred.Add(gstRate)).Round(2)
}

// DetermineInterState compares the 2-digit state code prefixes of the
// seller and buyer GSTINs. An empty or short GSTIN on either side
// yields false, treating the supply as intra-state.
func DetermineInterState(sellerGSTIN, buyerGSTIN string) bool {
	sellerState := ExtractStateCode(sellerGSTIN)
	buyerState := ExtractStateCode(buyerGSTIN)
	if sellerState == "" || buyerState == "" {
		return false
	}
	return sellerState != buyerState
}

// ExtractStateCode returns the 2-digit state code prefix of a GSTIN,
// or "" when the GSTIN is too short to carry one.
func ExtractStateCode(gstin string) string {
	if len(gstin) >= 2 {
		return gstin[:2]
	}
	return ""
}
