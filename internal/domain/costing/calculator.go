package costing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Fixed manufacturing tolerances in mm. These are properties of the
// converting process, not configurable per call.
const (
	GlueFlap        = 30.0 // overlap glued to close the box
	DeckleAllowance = 25.0 // 12.5 mm trimmed on each side
	SheetAllowance  = 15.0 // slotting/scoring allowance
)

// linerThicknessDivisor approximates liner caliper from GSM
const linerThicknessDivisor = 130.0

// fluteHeightMM is the board height contribution of one A-flute layer
const fluteHeightMM = 4.0

// mckeeConstant is the empirical constant of the McKee BCT formula
const mckeeConstant = 5.87

// CalculationResult is the output of a box cost calculation.
//
// Monetary fields are decimals in the same currency unit as the input
// rates; no currency conversion is performed. The strength estimates
// (ECT, BCT, BurstStrength) are nil when not computable - a board with
// no liner layers has no defined strength, which is distinct from a
// computed strength of zero.
type CalculationResult struct {
	SheetLength float64 `json:"sheet_length"` // mm
	SheetWidth  float64 `json:"sheet_width"`  // mm
	SheetArea   float64 `json:"sheet_area"`   // m²

	PaperWeight    decimal.Decimal `json:"paper_weight"`    // kg per box, 4 dp
	BoardThickness float64         `json:"board_thickness"` // mm, 3 dp

	PaperCost         decimal.Decimal `json:"paper_cost"` // 2 dp
	ManufacturingCost decimal.Decimal `json:"manufacturing_cost"`
	ConversionCost    decimal.Decimal `json:"conversion_cost"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`

	ECT           *float64 `json:"ect,omitempty"`            // kN/m
	BCT           *float64 `json:"bct,omitempty"`            // N
	BurstStrength *float64 `json:"burst_strength,omitempty"` // summed BF
}

// Calculate produces the complete costing for a box specification
// against the supplied rate table.
//
// It is a pure function: no side effects, deterministic for identical
// inputs, and safe for concurrent use. Layers with no rate entry are
// priced at zero; use RateTable.MissingKeys to detect that upstream.
func Calculate(spec BoxSpecification, rates RateTable) (CalculationResult, error) {
	if err := spec.Validate(); err != nil {
		return CalculationResult{}, err
	}

	var result CalculationResult

	result.SheetLength, result.SheetWidth = sheetDimensions(spec.Length, spec.Width, spec.Height)
	result.SheetArea = result.SheetLength * result.SheetWidth / 1_000_000 // mm² -> m²

	result.PaperWeight = paperWeight(result.SheetArea, spec.Layers, spec.FlutingFactor)
	result.BoardThickness = boardThickness(spec.Layers)

	result.PaperCost = paperCost(result.PaperWeight, spec.Layers, rates)
	result.ManufacturingCost = spec.PrintingCost.Add(spec.DieCost)
	result.ConversionCost = result.PaperWeight.Mul(spec.ConversionRate)

	// No intermediate rounding between unit and total cost, so
	// TotalCost == UnitCost * Quantity holds exactly at any quantity.
	result.UnitCost = result.PaperCost.Add(result.ManufacturingCost).Add(result.ConversionCost)
	result.TotalCost = result.UnitCost.Mul(decimal.NewFromInt(int64(spec.Quantity)))

	result.ECT = edgeCrush(spec.Layers)
	result.BCT = boxCompression(result.ECT, spec.Length, spec.Width, result.BoardThickness)
	result.BurstStrength = burstStrength(spec.Layers)

	return result, nil
}

// sheetDimensions converts box dimensions to blank sheet dimensions:
// the blank wraps all four panels plus the glue flap lengthwise, and
// covers the height plus top/bottom flap allowances across.
func sheetDimensions(length, width, height float64) (sheetLength, sheetWidth float64) {
	sheetLength = 2*(length+width) + GlueFlap + DeckleAllowance + SheetAllowance
	sheetWidth = 2*height + DeckleAllowance + SheetAllowance
	return sheetLength, sheetWidth
}

// paperWeight is the kg of paper per box. Flute layers consume more
// paper than their flat area by the corrugation take-up factor.
func paperWeight(sheetArea float64, layers []PaperLayer, flutingFactor float64) decimal.Decimal {
	totalGSM := 0.0
	for _, layer := range layers {
		if layer.IsFlute {
			totalGSM += float64(layer.GSM) * flutingFactor
		} else {
			totalGSM += float64(layer.GSM)
		}
	}
	return decimal.NewFromFloat(sheetArea * totalGSM / 1000).Round(4)
}

// boardThickness approximates combined board caliper: liners at
// GSM/130, flutes at a fixed A-flute height.
func boardThickness(layers []PaperLayer) float64 {
	thickness := 0.0
	for _, layer := range layers {
		if layer.IsFlute {
			thickness += fluteHeightMM
		} else {
			thickness += float64(layer.GSM) / linerThicknessDivisor
		}
	}
	return roundTo(thickness, 3)
}

// paperCost prices the paper weight at the GSM-weighted average of the
// per-layer rates. Missing rates contribute zero to the average.
func paperCost(weight decimal.Decimal, layers []PaperLayer, rates RateTable) decimal.Decimal {
	totalRate := decimal.Zero
	totalGSM := int64(0)
	for _, layer := range layers {
		rate, _ := rates.Rate(layer.Key())
		totalRate = totalRate.Add(rate.Mul(decimal.NewFromInt(int64(layer.GSM))))
		totalGSM += int64(layer.GSM)
	}
	if totalGSM == 0 {
		return decimal.Zero
	}
	avgRate := totalRate.Div(decimal.NewFromInt(totalGSM))
	return weight.Mul(avgRate).Round(2)
}

// edgeCrush estimates ECT from liner ring crush. Only liners carry
// edgewise load; a board with no liners has no defined ECT.
func edgeCrush(layers []PaperLayer) *float64 {
	totalRCT := 0.0
	for _, layer := range layers {
		if !layer.IsFlute {
			totalRCT += float64(layer.BF) * 0.1
		}
	}
	ect := totalRCT * 1.5
	if ect <= 0 {
		return nil
	}
	rounded := roundTo(ect, 2)
	return &rounded
}

// boxCompression predicts stacking strength via the McKee formula:
// BCT = 5.87 * ECT * sqrt(thickness) * sqrt(perimeter)
func boxCompression(ect *float64, length, width, thickness float64) *float64 {
	if ect == nil || *ect <= 0 {
		return nil
	}
	perimeter := 2 * (length + width)
	bct := mckeeConstant * *ect * math.Sqrt(thickness) * math.Sqrt(perimeter)
	rounded := roundTo(bct, 2)
	return &rounded
}

// burstStrength sums liner BF values; nil when no liner contributes
func burstStrength(layers []PaperLayer) *float64 {
	totalBF := 0
	for _, layer := range layers {
		if !layer.IsFlute {
			totalBF += layer.BF
		}
	}
	if totalBF <= 0 {
		return nil
	}
	bs := float64(totalBF)
	return &bs
}

// roundTo rounds a non-negative float half-up to the given decimals
func roundTo(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}
