package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boxerp/backend/internal/application/quote"
	"github.com/boxerp/backend/internal/domain/costing"
)

// CostingHandler exposes box costing and paper pricing calculations
type CostingHandler struct {
	BaseHandler
	service *quote.Service
}

// NewCostingHandler creates a new CostingHandler
func NewCostingHandler(service *quote.Service) *CostingHandler {
	return &CostingHandler{service: service}
}

// RegisterRoutes registers costing routes
func (h *CostingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/costing/calculate", h.Calculate)
	rg.POST("/pricing/paper-rate", h.PaperRate)
}

// PaperLayerRequest is one board ply in a costing request
type PaperLayerRequest struct {
	BF      int    `json:"bf" binding:"required,gt=0"`
	GSM     int    `json:"gsm" binding:"required,gt=0"`
	Shade   string `json:"shade" binding:"required"`
	IsFlute bool   `json:"is_flute"`
}

// PaperRateEntryRequest is one tenant rate-table entry
type PaperRateEntryRequest struct {
	BF    int     `json:"bf" binding:"required,gt=0"`
	GSM   int     `json:"gsm" binding:"required,gt=0"`
	Shade string  `json:"shade" binding:"required"`
	Rate  float64 `json:"rate" binding:"gte=0"`
}

// CalculateRequest is the payload for a quote-line costing
type CalculateRequest struct {
	Length   float64             `json:"length" binding:"required,gt=0"`
	Width    float64             `json:"width" binding:"required,gt=0"`
	Height   float64             `json:"height" binding:"required,gt=0"`
	Ply      int                 `json:"ply" binding:"required,min=3,max=9"`
	Quantity int                 `json:"quantity" binding:"required,gt=0"`
	Layers   []PaperLayerRequest `json:"layers" binding:"required,dive"`

	FlutingFactor  float64 `json:"fluting_factor" binding:"omitempty,gt=1"`
	ConversionRate float64 `json:"conversion_rate" binding:"gte=0"`
	PrintingCost   float64 `json:"printing_cost" binding:"gte=0"`
	DieCost        float64 `json:"die_cost" binding:"gte=0"`

	Rates []PaperRateEntryRequest `json:"rates" binding:"omitempty,dive"`
}

// Calculate handles POST /costing/calculate
func (h *CostingHandler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	input := quote.QuoteLineInput{
		TenantID:       tenantID,
		Length:         req.Length,
		Width:          req.Width,
		Height:         req.Height,
		Ply:            req.Ply,
		Quantity:       req.Quantity,
		FlutingFactor:  req.FlutingFactor,
		ConversionRate: decimal.NewFromFloat(req.ConversionRate),
		PrintingCost:   decimal.NewFromFloat(req.PrintingCost),
		DieCost:        decimal.NewFromFloat(req.DieCost),
	}
	input.Layers = make([]quote.PaperLayerInput, len(req.Layers))
	for i, l := range req.Layers {
		input.Layers[i] = quote.PaperLayerInput{BF: l.BF, GSM: l.GSM, Shade: l.Shade, IsFlute: l.IsFlute}
	}
	input.Rates = make([]quote.PaperRateInput, len(req.Rates))
	for i, r := range req.Rates {
		input.Rates[i] = quote.PaperRateInput{BF: r.BF, GSM: r.GSM, Shade: r.Shade, Rate: decimal.NewFromFloat(r.Rate)}
	}

	output, err := h.service.CalculateLine(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, output)
}

// PaperRateRequest is the payload for a paper rate resolution
type PaperRateRequest struct {
	BF    int    `json:"bf" binding:"required,gt=0"`
	GSM   int    `json:"gsm" binding:"required,gt=0"`
	Shade string `json:"shade"`

	BFBasePrice       float64 `json:"bf_base_price" binding:"gte=0"`
	LowGSMThreshold   int     `json:"low_gsm_threshold"`
	LowGSMAdjustment  float64 `json:"low_gsm_adjustment"`
	HighGSMThreshold  int     `json:"high_gsm_threshold"`
	HighGSMAdjustment float64 `json:"high_gsm_adjustment"`
	ShadePremium      float64 `json:"shade_premium"`
	MarketAdjustment  float64 `json:"market_adjustment"`
}

// PaperRateResponse carries the resolved per-kg rate
type PaperRateResponse struct {
	BF    int    `json:"bf"`
	GSM   int    `json:"gsm"`
	Shade string `json:"shade"`
	Rate  string `json:"rate"`
}

// PaperRate handles POST /pricing/paper-rate
func (h *CostingHandler) PaperRate(c *gin.Context) {
	var req PaperRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "invalid tenant ID")
		return
	}

	rate, err := h.service.ResolvePaperRate(c.Request.Context(), quote.PaperRateQuery{
		TenantID:    tenantID,
		BF:          req.BF,
		GSM:         req.GSM,
		Shade:       req.Shade,
		BFBasePrice: decimal.NewFromFloat(req.BFBasePrice),
		Rule: costing.PricingAdjustmentRule{
			LowGSMThreshold:   req.LowGSMThreshold,
			LowGSMAdjustment:  decimal.NewFromFloat(req.LowGSMAdjustment),
			HighGSMThreshold:  req.HighGSMThreshold,
			HighGSMAdjustment: decimal.NewFromFloat(req.HighGSMAdjustment),
		},
		ShadePremium:     decimal.NewFromFloat(req.ShadePremium),
		MarketAdjustment: decimal.NewFromFloat(req.MarketAdjustment),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, PaperRateResponse{
		BF:    req.BF,
		GSM:   req.GSM,
		Shade: req.Shade,
		Rate:  rate.StringFixed(2),
	})
}
