package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boxerp/backend/internal/domain/tax"
	"github.com/boxerp/backend/internal/infrastructure/logger"
)

// TaxHandler exposes GST calculation and GSTIN validation
type TaxHandler struct {
	BaseHandler
	defaultGSTRate decimal.Decimal
}

// NewTaxHandler creates a new TaxHandler. A zero default rate falls
// back to the statutory default for corrugated packaging.
func NewTaxHandler(defaultGSTRate decimal.Decimal) *TaxHandler {
	if defaultGSTRate.IsZero() {
		defaultGSTRate = tax.DefaultGSTRate
	}
	return &TaxHandler{defaultGSTRate: defaultGSTRate}
}

// RegisterRoutes registers tax routes
func (h *TaxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tax/gst", h.CalculateGST)
	rg.POST("/tax/gst/reverse", h.ReverseGST)
	rg.POST("/tax/gstin/validate", h.ValidateGSTIN)
}

// GSTRequest is the payload for a GST breakdown calculation.
// InterState, when omitted, is determined by comparing the seller and
// buyer GSTIN state codes.
type GSTRequest struct {
	Amount         float64  `json:"amount" binding:"gte=0"`
	GSTRate        *float64 `json:"gst_rate" binding:"omitempty,gte=0"`
	DiscountAmount float64  `json:"discount_amount" binding:"gte=0"`
	InterState     *bool    `json:"is_inter_state"`
	SellerGSTIN    string   `json:"seller_gstin"`
	BuyerGSTIN     string   `json:"buyer_gstin"`
}

// GSTResponse renders each breakdown field as a 2-decimal fixed-point
// string
type GSTResponse struct {
	TaxableValue string `json:"taxable_value"`
	CGST         string `json:"cgst"`
	SGST         string `json:"sgst"`
	IGST         string `json:"igst"`
	TotalGST     string `json:"total_gst"`
	TotalAmount  string `json:"total_amount"`
	InterState   bool   `json:"is_inter_state"`
}

// CalculateGST handles POST /tax/gst
func (h *TaxHandler) CalculateGST(c *gin.Context) {
	var req GSTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	gstRate := h.defaultGSTRate
	if req.GSTRate != nil {
		gstRate = decimal.NewFromFloat(*req.GSTRate)
	}

	interState := false
	if req.InterState != nil {
		interState = *req.InterState
	} else {
		for _, gstin := range []string{req.SellerGSTIN, req.BuyerGSTIN} {
			if gstin != "" && !tax.ValidateGSTIN(gstin) {
				logger.GetGinLogger(c).Warn("malformed GSTIN in GST request",
					zap.String("gstin", gstin))
			}
		}
		interState = tax.DetermineInterState(req.SellerGSTIN, req.BuyerGSTIN)
	}

	b := tax.CalculateGST(
		decimal.NewFromFloat(req.Amount),
		gstRate,
		interState,
		decimal.NewFromFloat(req.DiscountAmount),
	)

	h.Success(c, GSTResponse{
		TaxableValue: b.TaxableValue.StringFixed(2),
		CGST:         b.CGST.StringFixed(2),
		SGST:         b.SGST.StringFixed(2),
		IGST:         b.IGST.StringFixed(2),
		TotalGST:     b.TotalGST.StringFixed(2),
		TotalAmount:  b.TotalAmount.StringFixed(2),
		InterState:   interState,
	})
}

// ReverseGSTRequest is the payload for backing out a pre-tax base
type ReverseGSTRequest struct {
	TotalAmount float64  `json:"total_amount" binding:"gte=0"`
	GSTRate     *float64 `json:"gst_rate" binding:"omitempty,gte=0"`
}

// ReverseGSTResponse carries the recovered pre-tax base amount
type ReverseGSTResponse struct {
	BaseAmount string `json:"base_amount"`
}

// ReverseGST handles POST /tax/gst/reverse
func (h *TaxHandler) ReverseGST(c *gin.Context) {
	var req ReverseGSTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	gstRate := h.defaultGSTRate
	if req.GSTRate != nil {
		gstRate = decimal.NewFromFloat(*req.GSTRate)
	}

	base := tax.CalculateReverseGST(decimal.NewFromFloat(req.TotalAmount), gstRate)
	h.Success(c, ReverseGSTResponse{BaseAmount: base.StringFixed(2)})
}

// GSTINRequest is the payload for a GSTIN validation
type GSTINRequest struct {
	GSTIN string `json:"gstin" binding:"required"`
}

// GSTINResponse reports the validation result; validation never fails
// the request itself
type GSTINResponse struct {
	GSTIN     string `json:"gstin"`
	Valid     bool   `json:"valid"`
	StateCode string `json:"state_code,omitempty"`
}

// ValidateGSTIN handles POST /tax/gstin/validate
func (h *TaxHandler) ValidateGSTIN(c *gin.Context) {
	var req GSTINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp := GSTINResponse{
		GSTIN: req.GSTIN,
		Valid: tax.ValidateGSTIN(req.GSTIN),
	}
	if resp.Valid {
		resp.StateCode = tax.ExtractStateCode(req.GSTIN)
	}

	h.Success(c, resp)
}
