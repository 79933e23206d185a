package costing

import (
	"fmt"

	"github.com/boxerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ply bounds for regular slotted containers. 3-ply is single-wall,
// 9-ply the heaviest triple-wall board the plants produce.
const (
	MinPly = 3
	MaxPly = 9
)

// DefaultFlutingFactor is the take-up factor for A-flute medium
const DefaultFlutingFactor = 1.35

// BoxSpecification describes the box to be costed. It is transient -
// assembled per calculation call from quote-item request fields and
// never persisted by this engine.
type BoxSpecification struct {
	Length float64 // mm, internal dimension
	Width  float64 // mm
	Height float64 // mm

	Ply      int
	Quantity int

	// Layers is ordered outer liner -> inner liner and must have
	// exactly Ply entries.
	Layers []PaperLayer

	// FlutingFactor is the corrugation take-up factor (>1.0)
	FlutingFactor float64

	// ConversionRate is the per-kg conversion charge
	ConversionRate decimal.Decimal

	// PrintingCost and DieCost are flat per-box additions
	PrintingCost decimal.Decimal
	DieCost      decimal.Decimal
}

// Validate rejects caller contract violations before any computation.
// The returned errors carry the INVALID_INPUT domain code.
func (s BoxSpecification) Validate() error {
	if s.Length <= 0 || s.Width <= 0 || s.Height <= 0 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			"box dimensions must be positive")
	}
	if s.Ply < MinPly || s.Ply > MaxPly {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("ply must be between %d and %d, got %d", MinPly, MaxPly, s.Ply))
	}
	if s.Quantity <= 0 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			"quantity must be positive")
	}
	if len(s.Layers) != s.Ply {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("expected %d paper layers for %d-ply board, got %d", s.Ply, s.Ply, len(s.Layers)))
	}
	for i, layer := range s.Layers {
		if layer.BF <= 0 {
			return shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("layer %d: bf must be positive", i))
		}
		if layer.GSM <= 0 {
			return shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("layer %d: gsm must be positive", i))
		}
	}
	if s.FlutingFactor <= 1.0 {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			"fluting factor must be greater than 1.0")
	}
	if s.ConversionRate.IsNegative() {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			"conversion rate cannot be negative")
	}
	if s.PrintingCost.IsNegative() || s.DieCost.IsNegative() {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			"printing and die costs cannot be negative")
	}
	return nil
}

// LinerLayers returns the non-flute layers in order
func (s BoxSpecification) LinerLayers() []PaperLayer {
	liners := make([]PaperLayer, 0, len(s.Layers))
	for _, layer := range s.Layers {
		if !layer.IsFlute {
			liners = append(liners, layer)
		}
	}
	return liners
}
