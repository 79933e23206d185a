package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaperLayer is one ply of the corrugated board.
// It is an immutable value, constructed once per quote-item calculation.
type PaperLayer struct {
	BF      int    // bursting factor, positive
	GSM     int    // grams per square meter, positive
	Shade   string // paper shade identifier (e.g., "KRA", "WHT")
	IsFlute bool   // true for corrugated (flute) layers
}

// RateKey identifies a paper rate by its grade and shade
type RateKey struct {
	BF    int
	GSM   int
	Shade string
}

// String returns a human-readable form of the key, used in log messages
func (k RateKey) String() string {
	return fmt.Sprintf("bf=%d gsm=%d shade=%s", k.BF, k.GSM, k.Shade)
}

// Key returns the rate lookup key for this layer
func (l PaperLayer) Key() RateKey {
	return RateKey{BF: l.BF, GSM: l.GSM, Shade: l.Shade}
}

// RateTable maps paper grades to per-kg rates. It is supplied by the
// caller (populated from tenant pricing tables) and read-only within a
// calculation.
type RateTable map[RateKey]decimal.Decimal

// Rate returns the per-kg rate for a key. The second return value is
// false when no entry exists; the calculator then prices the layer at
// zero. Callers are responsible for validating table completeness
// upstream - a missing rate silently underprices the quote.
func (t RateTable) Rate(key RateKey) (decimal.Decimal, bool) {
	rate, ok := t[key]
	if !ok {
		return decimal.Zero, false
	}
	return rate, true
}

// MissingKeys returns the distinct layer keys that have no rate entry,
// preserving first-seen order.
func (t RateTable) MissingKeys(layers []PaperLayer) []RateKey {
	var missing []RateKey
	seen := make(map[RateKey]bool)
	for _, layer := range layers {
		key := layer.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := t[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// PricingAdjustmentRule holds the GSM-band adjustments applied on top of
// a base BF rate. All adjustments are additive.
type PricingAdjustmentRule struct {
	LowGSMThreshold   int             // gsm <= threshold gets the low adjustment
	LowGSMAdjustment  decimal.Decimal // per-kg addition for low-GSM paper
	HighGSMThreshold  int             // gsm >= threshold gets the high adjustment
	HighGSMAdjustment decimal.Decimal // per-kg addition for high-GSM paper
}
