package costing

import "github.com/shopspring/decimal"

// CalculatePaperRate resolves the final per-kg paper rate:
//
//	rate = BF base price + GSM adjustment + shade premium + market adjustment
//
// The GSM adjustment is banded: paper at or below the low threshold
// gets the low adjustment, paper at or above the high threshold gets
// the high adjustment, and mid-range paper gets neither. When the
// thresholds overlap, the low band wins by evaluation order.
//
// The result is rounded half-up to 2 decimals and is what callers
// populate into the RateTable consumed by Calculate.
func CalculatePaperRate(
	gsm int,
	bfBasePrice decimal.Decimal,
	rule PricingAdjustmentRule,
	shadePremium decimal.Decimal,
	marketAdjustment decimal.Decimal,
) decimal.Decimal {
	rate := bfBasePrice

	if gsm <= rule.LowGSMThreshold {
		rate = rate.Add(rule.LowGSMAdjustment)
	} else if gsm >= rule.HighGSMThreshold {
		rate = rate.Add(rule.HighGSMAdjustment)
	}

	rate = rate.Add(shadePremium)
	rate = rate.Add(marketAdjustment)

	return rate.Round(2)
}
